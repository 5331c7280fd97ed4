// Package static fetches static JSON documents published next to the storefront.
package static

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/logger"
	"github.com/kailas-cloud/livesearch/internal/metrics"
	"github.com/kailas-cloud/livesearch/internal/transport/tracing"
)

const (
	transportLabel = "static"
	maxBodyBytes   = 4 << 20
)

// Fetcher issues plain GET requests.
type Fetcher struct {
	httpClient *http.Client
	baseURL    string
}

// NewFetcher creates a Fetcher. Relative paths passed to Get are resolved
// against baseURL; a nil client uses http.DefaultClient.
func NewFetcher(httpClient *http.Client, baseURL string) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{httpClient: httpClient, baseURL: baseURL}
}

// Get downloads the document at path. op labels metrics and errors.
func (f *Fetcher) Get(ctx context.Context, op, path string) (body []byte, err error) {
	target := f.resolve(path)
	ctx, span := tracing.StartClientSpan(ctx, "GET "+op,
		attribute.String("url.full", target),
	)
	defer func() { tracing.End(span, err) }()

	start := time.Now()
	body, errType, err := f.get(ctx, op, target)
	metrics.UpstreamRequestDuration.WithLabelValues(transportLabel, op).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(transportLabel, op, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(transportLabel, op, errType).Inc()
		logger.FromContext(ctx).Debug("static fetch failed",
			zap.String("operation", op),
			zap.String("url", target),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(transportLabel, op, "success").Inc()
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, op, target string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, "request", domain.NewTransportError(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	tracing.InjectTraceparent(ctx, req)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "network", domain.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "status", domain.NewTransportError(op, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "network", domain.NewTransportError(op, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	return body, "", nil
}

func (f *Fetcher) resolve(path string) string {
	if f.baseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(f.baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}
