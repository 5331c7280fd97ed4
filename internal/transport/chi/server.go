package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/alert"
	dompromo "github.com/kailas-cloud/livesearch/internal/domain/promo"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
	"github.com/kailas-cloud/livesearch/internal/domain/search/result"
	galleryuc "github.com/kailas-cloud/livesearch/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/livesearch/internal/usecase/health"
	promouc "github.com/kailas-cloud/livesearch/internal/usecase/promo"
	searchuc "github.com/kailas-cloud/livesearch/internal/usecase/search"
	subscriptionuc "github.com/kailas-cloud/livesearch/internal/usecase/subscription"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeUnauthorized         = "unauthorized"
	codeConfigurationMissing = "configuration_missing"
	codeUpstreamError        = "upstream_error"
	codeMalformedResponse    = "malformed_response"
	codeInternalError        = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Services bundles the use cases served over HTTP.
type Services struct {
	Search       *searchuc.Service
	Promo        *promouc.Service
	Gallery      *galleryuc.Service
	Subscription *subscriptionuc.Service
	Health       *healthuc.Service
}

// Server serves the storefront search BFF routes.
type Server struct {
	search        *searchuc.Service
	promo         *promouc.Service
	gallery       *galleryuc.Service
	subscription  *subscriptionuc.Service
	health        *healthuc.Service
	identity      domain.Identity
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. identity routes every catalog call.
func NewServer(svc Services, identity domain.Identity, logger *zap.Logger) *Server {
	s := &Server{
		search:       svc.Search,
		promo:        svc.Promo,
		gallery:      svc.Gallery,
		subscription: svc.Subscription,
		health:       svc.Health,
		identity:     identity,
		logger:       logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrConfigurationMissing, http.StatusServiceUnavailable, codeConfigurationMissing),
		sentinelHandler(domain.ErrMalformedResponse, http.StatusBadGateway, codeMalformedResponse),
		sentinelHandler(domain.ErrTransport, http.StatusBadGateway, codeUpstreamError),
	}
	return s
}

// Routes registers every handler on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.ProductSearch)
		r.Get("/attributes", s.AttributeMetadata)
		r.Post("/refine", s.RefineProduct)
		r.Get("/promo-tiles", s.PromoTiles)
		r.Post("/images", s.GalleryImages)
		r.Post("/stock-alerts", s.StockAlert)
	})
}

// ProductSearch handles POST /v1/search.
func (s *Server) ProductSearch(w http.ResponseWriter, r *http.Request) {
	var body searchBody
	if !decodeBody(w, r, &body) {
		return
	}

	req, err := request.New(request.Params{
		Phrase:            body.Phrase,
		PageSize:          body.PageSize,
		CurrentPage:       body.CurrentPage,
		Filter:            body.Filter,
		Sort:              body.Sort,
		Context:           body.Context,
		CategorySearch:    body.CategorySearch,
		DisplayOutOfStock: body.DisplayOutOfStock,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.search.ProductSearch(r.Context(), s.identityFor(r), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(res))
}

// AttributeMetadata handles GET /v1/attributes.
func (s *Server) AttributeMetadata(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.AttributeMetadata(r.Context(), s.identityFor(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(res))
}

// RefineProduct handles POST /v1/refine.
func (s *Server) RefineProduct(w http.ResponseWriter, r *http.Request) {
	var body refineBody
	if !decodeBody(w, r, &body) {
		return
	}

	ref, err := request.NewRefine(body.OptionIDs, body.SKU)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.search.RefineProduct(r.Context(), s.identityFor(r), body.Context, ref)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dataResponse(res))
}

// PromoTiles handles GET /v1/promo-tiles?category=&position=.
// Failures never surface: the response is an empty list.
func (s *Server) PromoTiles(w http.ResponseWriter, r *http.Request) {
	tiles := s.promo.CategoryTiles(r.Context(), r.URL.Query().Get("category"))

	if raw := r.URL.Query().Get("position"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "position must be a positive integer")
			return
		}
		tiles = tileAt(tiles, n)
	}

	writeJSON(w, http.StatusOK, promoResponse{Data: tiles})
}

// GalleryImages handles POST /v1/images.
func (s *Server) GalleryImages(w http.ResponseWriter, r *http.Request) {
	var body imagesBody
	if !decodeBody(w, r, &body) {
		return
	}

	g, err := s.gallery.Resolve(galleryuc.Query{
		Images:      body.Images,
		TopImageURL: body.TopImageURL,
		Amount:      body.Amount,
		BaseWidth:   body.BaseWidth,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, imagesResponse{URLs: g.URLs, Images: g.Images})
}

// StockAlert handles POST /v1/stock-alerts.
func (s *Server) StockAlert(w http.ResponseWriter, r *http.Request) {
	var body stockAlertBody
	if !decodeBody(w, r, &body) {
		return
	}

	sub, err := alert.New(body.Email, body.Agree, body.ProductID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	msg, err := s.subscription.Subscribe(r.Context(), sub)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stockAlertResponse{Message: msg})
}

// HealthCheck handles GET /health. A degraded cache still answers 200
// because promo tiles fall through to the origin.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// identityFor pins X-Request-Id when the caller sent one.
func (s *Server) identityFor(r *http.Request) domain.Identity {
	id := s.identity
	if rid := r.Header.Get(domain.HeaderRequestID); rid != "" {
		id.RequestID = rid
	}
	return id
}

func tileAt(tiles []dompromo.Tile, n int) []dompromo.Tile {
	if t, ok := dompromo.AtPosition(tiles, n); ok {
		return []dompromo.Tile{t}
	}
	return []dompromo.Tile{}
}

func dataResponse(res result.Result) envelope {
	return envelope{Data: res.Data()}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation details are
// returned as is, upstream failures only by their sentinel.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidRequest) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrConfigurationMissing,
		domain.ErrMalformedResponse,
		domain.ErrTransport,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
