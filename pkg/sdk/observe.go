package livesearch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/livesearch/internal/domain"
)

// Outcomes recorded per call. Empty is a success that found nothing: a
// search with zero products, or no promo tile for the category.
const (
	outcomeOK            = "ok"
	outcomeEmpty         = "empty"
	outcomeInvalid       = "invalid_request"
	outcomeNotConfigured = "configuration_missing"
	outcomeMalformed     = "malformed_response"
	outcomeTransport     = "transport_error"
	outcomeError         = "error"
)

// outcomeOf maps err onto the domain error kinds. The first matching kind wins.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case errors.Is(err, domain.ErrInvalidRequest):
		return outcomeInvalid
	case errors.Is(err, domain.ErrConfigurationMissing):
		return outcomeNotConfigured
	case errors.Is(err, domain.ErrMalformedResponse):
		return outcomeMalformed
	case errors.Is(err, domain.ErrTransport):
		return outcomeTransport
	default:
		return outcomeError
	}
}

type sdkMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	upstream *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "livesearch",
			Subsystem: "sdk",
			Name:      "calls_total",
			Help:      "SDK calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "livesearch",
			Subsystem: "sdk",
			Name:      "call_duration_seconds",
			Help:      "SDK call latency including upstream round trips.",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "livesearch",
			Subsystem: "sdk",
			Name:      "upstream_failures_total",
			Help:      "Failed upstream calls by operation and HTTP status (0 for network or GraphQL errors).",
		}, []string{"operation", "status"}),
	}
	if err := registerOrReuse(reg, &m.calls); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.upstream); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers c, or points it at the collector a previous
// Client registered under the same name.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return fmt.Errorf("livesearch: register metric: %w", err)
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("livesearch: metric already registered with incompatible type: %T", are.ExistingCollector)
	}
	*c = existing
	return nil
}

// observer records SDK calls. A nil observer records nothing.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	if logger == nil && reg == nil {
		return nil, nil
	}
	o := &observer{logger: logger}
	if reg != nil {
		m, err := newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.metrics = m
	}
	return o, nil
}

// observe records a call whose success carries no payload worth inspecting.
func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	o.record(op, start, outcomeOf(err), err)
}

// observeData records a catalog call. A null envelope or a product search
// with total_count 0 counts as empty.
func (o *observer) observeData(op string, start time.Time, data json.RawMessage, err error) {
	if o == nil {
		return
	}
	outcome := outcomeOf(err)
	if err == nil && emptyData(data) {
		outcome = outcomeEmpty
	}
	o.record(op, start, outcome, err)
}

// observeTiles records a promo lookup. fallThrough is the error that was
// swallowed into an empty tile list; it is logged but the call still succeeded.
func (o *observer) observeTiles(start time.Time, n int, fallThrough error) {
	if o == nil {
		return
	}
	outcome := outcomeOf(fallThrough)
	if fallThrough == nil && n == 0 {
		outcome = outcomeEmpty
	}
	o.record("promo_tiles", start, outcome, fallThrough)
}

func (o *observer) record(op string, start time.Time, outcome string, err error) {
	dur := time.Since(start)

	var te *domain.TransportError
	isTransport := errors.As(err, &te)

	if o.metrics != nil {
		o.metrics.calls.WithLabelValues(op, outcome).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(dur.Seconds())
		if isTransport {
			o.metrics.upstream.WithLabelValues(op, fmt.Sprint(te.Status)).Inc()
		}
	}

	if o.logger == nil {
		return
	}
	attrs := []any{"op", op, "outcome", outcome, "duration", dur}
	switch {
	case err == nil:
		o.logger.Debug("call completed", attrs...)
	case isTransport:
		o.logger.Warn("call failed", append(attrs, "upstream_status", te.Status, "error", err)...)
	default:
		o.logger.Warn("call failed", append(attrs, "error", err)...)
	}
}

func emptyData(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var env struct {
		ProductSearch *struct {
			TotalCount *int `json:"total_count"`
		} `json:"productSearch"`
	}
	if json.Unmarshal(trimmed, &env) != nil || env.ProductSearch == nil || env.ProductSearch.TotalCount == nil {
		return false
	}
	return *env.ProductSearch.TotalCount == 0
}
