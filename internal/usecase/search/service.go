package search

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/events"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
	"github.com/kailas-cloud/livesearch/internal/domain/search/result"
	"github.com/kailas-cloud/livesearch/internal/logger"
)

// Service shapes catalog queries and publishes search lifecycle events.
type Service struct {
	catalog Catalog
	emitter events.Emitter
	newID   func() string
}

// New creates a search service. publisher may be nil.
func New(catalog Catalog, publisher events.Publisher) *Service {
	return &Service{
		catalog: catalog,
		emitter: events.NewEmitter(publisher),
		newID:   uuid.NewString,
	}
}

// ProductSearch sends req with default visibility and stock filters applied
// and returns the data envelope. Lifecycle events are emitted around the call;
// on failure only the input events fire.
func (s *Service) ProductSearch(
	ctx context.Context, id domain.Identity, req *request.Request,
) (result.Result, error) {
	vars := req.Variables()
	headers := id.Headers(req.CustomerGroup())
	searchRequestID := s.newID()

	s.emitter.SearchInput(domain.SearchUnitID, searchRequestID, events.SearchInput{
		Phrase:      vars.Phrase,
		Filter:      vars.Filter,
		PageSize:    vars.PageSize,
		CurrentPage: vars.CurrentPage,
		Sort:        vars.Sort,
	})

	logger.FromContext(ctx).Debug("product search",
		zap.String("search_request_id", searchRequestID),
		zap.String("request_id", headers[domain.HeaderRequestID]),
		zap.Int("filters", len(vars.Filter)),
		zap.Bool("category_search", req.CategorySearch()),
	)

	data, err := s.catalog.ProductSearch(ctx, headers, vars)
	if err != nil {
		return result.Result{}, fmt.Errorf("product search: %w", err)
	}

	res := result.New(data)
	s.emitter.SearchResults(domain.SearchUnitID, searchRequestID, res.ProductSearch(), req.CategorySearch())
	return res, nil
}

// AttributeMetadata fetches sortable and filterable attributes. The customer
// group header is always empty.
func (s *Service) AttributeMetadata(ctx context.Context, id domain.Identity) (result.Result, error) {
	data, err := s.catalog.AttributeMetadata(ctx, id.Headers(""))
	if err != nil {
		return result.Result{}, fmt.Errorf("attribute metadata: %w", err)
	}
	return result.New(data), nil
}

// RefineProduct resolves the variant of sku for the selected options.
func (s *Service) RefineProduct(
	ctx context.Context, id domain.Identity, qctx *domain.QueryContext, ref request.Refine,
) (result.Result, error) {
	data, err := s.catalog.RefineProduct(ctx, id.Headers(domain.CustomerGroupOf(qctx)), ref)
	if err != nil {
		return result.Result{}, fmt.Errorf("refine product: %w", err)
	}
	return result.New(data), nil
}
