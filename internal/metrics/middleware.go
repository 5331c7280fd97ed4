package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests no route pattern matched (404s, stray paths).
const unmatchedRoute = "unmatched"

var (
	bffRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "livesearch",
			Subsystem: "bff",
			Name:      "request_duration_seconds",
			Help:      "BFF request duration in seconds by route",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	bffRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livesearch",
			Subsystem: "bff",
			Name:      "requests_total",
			Help:      "BFF requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	bffInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "livesearch",
			Subsystem: "bff",
			Name:      "requests_in_flight",
			Help:      "BFF requests currently being served",
		},
	)
)

func init() {
	prometheus.MustRegister(bffRequestDuration, bffRequestsTotal, bffInFlight)
}

// Middleware records per-route latency, status counts and in-flight requests.
// Requests to skipPaths (usually /metrics) pass through unmeasured.
func Middleware(skipPaths ...string) func(next http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			bffInFlight.Inc()
			defer bffInFlight.Dec()

			start := time.Now()
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routeLabel(r)
			code := strconv.Itoa(status)

			bffRequestDuration.WithLabelValues(r.Method, route, code).Observe(time.Since(start).Seconds())
			bffRequestsTotal.WithLabelValues(r.Method, route, code).Inc()
		})
	}
}

// routeLabel returns the matched chi pattern so path params never become labels.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	return normalizeRoute(rctx.RoutePattern())
}

func normalizeRoute(pattern string) string {
	if pattern == "" || pattern == "/*" {
		return unmatchedRoute
	}
	return pattern
}
