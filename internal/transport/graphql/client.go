// Package graphql posts GraphQL documents to the catalog service over HTTPS.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
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
	"github.com/kailas-cloud/livesearch/internal/version"
)

const (
	transportLabel = "graphql"
	maxBodyBytes   = 16 << 20
)

// Client sends one POST per call. It does not retry and has no timeout of its
// own; callers bound calls with the context.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// Config holds the transport settings.
type Config struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient creates a GraphQL client. A nil HTTPClient uses http.DefaultClient.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{httpClient: hc, endpoint: cfg.Endpoint}
}

// Endpoint returns the configured URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Request is one GraphQL operation.
type Request struct {
	// Operation names the call in metrics, spans and errors.
	Operation string
	Query     string
	// Variables is omitted from the body when nil.
	Variables any
	Headers   map[string]string
}

type payload struct {
	Query     string `json:"query"`
	Variables any    `json:"variables,omitempty"`
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors Errors          `json:"errors"`
}

// Do posts req and returns the raw data member of the response envelope.
// Data is nil when the server returned none. Errors are *domain.TransportError
// (network, non-2xx, GraphQL errors without data) or wrap ErrMalformedResponse.
func (c *Client) Do(ctx context.Context, req Request) (data json.RawMessage, err error) {
	ctx, span := tracing.StartClientSpan(ctx, "graphql "+req.Operation,
		attribute.String("graphql.operation.name", req.Operation),
	)
	defer func() { tracing.End(span, err) }()

	log := logger.FromContext(ctx)
	start := time.Now()

	data, errType, err := c.do(ctx, req)

	duration := time.Since(start)
	metrics.UpstreamRequestDuration.WithLabelValues(transportLabel, req.Operation).Observe(duration.Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(transportLabel, req.Operation, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(transportLabel, req.Operation, errType).Inc()
		log.Warn("graphql request failed",
			zap.String("operation", req.Operation),
			zap.String("error_type", errType),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(transportLabel, req.Operation, "success").Inc()
	log.Debug("graphql request",
		zap.String("operation", req.Operation),
		zap.Duration("duration", duration),
	)
	return data, nil
}

func (c *Client) do(ctx context.Context, req Request) (json.RawMessage, string, error) {
	body, err := json.Marshal(payload{Query: req.Query, Variables: req.Variables})
	if err != nil {
		return nil, "encode", fmt.Errorf("%s: encode payload: %w", req.Operation, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, "request", domain.NewTransportError(req.Operation, 0, err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get(domain.HeaderContentType) == "" {
		httpReq.Header.Set(domain.HeaderContentType, "application/json")
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", "livesearch/"+version.String())
	}
	tracing.InjectTraceparent(ctx, httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "network", domain.NewTransportError(req.Operation, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, "network", domain.NewTransportError(req.Operation, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "status", domain.NewTransportError(req.Operation, resp.StatusCode, statusDetail(raw))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, "decode", domain.MalformedResponse(req.Operation, err)
	}

	if isNull(env.Data) {
		if len(env.Errors) > 0 {
			return nil, "graphql", domain.NewTransportError(req.Operation, 0, env.Errors)
		}
		return nil, "", nil
	}
	if len(env.Errors) > 0 {
		logger.FromContext(ctx).Warn("graphql partial response",
			zap.String("operation", req.Operation),
			zap.Error(env.Errors),
		)
	}
	return env.Data, "", nil
}

// statusDetail extracts GraphQL errors from a non-2xx body, if any.
func statusDetail(raw []byte) error {
	var env envelope
	if json.Unmarshal(raw, &env) == nil && len(env.Errors) > 0 {
		return env.Errors
	}
	return nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Error is one entry of the GraphQL errors array.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Errors is the GraphQL errors array.
type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, item := range e {
		msgs = append(msgs, item.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// AsErrors extracts GraphQL errors from err.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	ok := errors.As(err, &errs)
	return errs, ok
}
