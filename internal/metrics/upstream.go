package metrics

import "github.com/prometheus/client_golang/prometheus"

// Upstream Prometheus metrics: catalog GraphQL calls, static documents, the
// promo tile cache and search lifecycle events.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livesearch",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream requests",
		},
		[]string{"transport", "operation", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "livesearch",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"transport", "operation"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livesearch",
			Name:      "upstream_errors_total",
			Help:      "Total upstream errors",
		},
		[]string{"transport", "operation", "error_type"},
	)

	PromoCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livesearch",
			Name:      "promo_cache_total",
			Help:      "Promo tile cache hits, misses and evictions",
		},
		[]string{"result"}, // "hit" / "miss" / "evict"
	)

	SearchEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "livesearch",
			Name:      "search_events_total",
			Help:      "Search lifecycle events published",
		},
		[]string{"unit", "event"},
	)
)

var upstreamMetricsRegistered bool

// RegisterUpstreamMetrics registers upstream Prometheus metrics. Must be called once from main.
func RegisterUpstreamMetrics() {
	if upstreamMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(PromoCacheTotal)
	prometheus.MustRegister(SearchEventsTotal)
	upstreamMetricsRegistered = true
}
