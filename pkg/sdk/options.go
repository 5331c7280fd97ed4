package livesearch

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain/events"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	environmentID   string
	environmentType string
	websiteCode     string
	storeCode       string
	storeViewCode   string
	apiURL          string
	apiKey          string
	sandboxAPIKey   string

	storeGraphQLURL string

	staticBaseURL  string
	promoTilesPath string

	cdnHost       string
	legacySegment string

	redisAddrs    []string
	redisPassword string
	redisTTL      time.Duration

	httpClient *http.Client
	publisher  events.Publisher

	logger     *slog.Logger
	zapLogger  *zap.Logger
	metricsReg prometheus.Registerer
}

// WithEnvironment sets the catalog environment id and type. Type
// EnvironmentTesting selects the sandbox endpoint.
func WithEnvironment(id, environmentType string) Option {
	return optionFunc(func(c *clientConfig) {
		c.environmentID = id
		c.environmentType = environmentType
	})
}

// WithStoreView sets the website, store and store view codes sent with every call.
func WithStoreView(websiteCode, storeCode, storeViewCode string) Option {
	return optionFunc(func(c *clientConfig) {
		c.websiteCode = websiteCode
		c.storeCode = storeCode
		c.storeViewCode = storeViewCode
	})
}

// WithAPIKey sets the catalog service API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithSandboxAPIKey sets the key used in the testing environment when no
// API key is configured.
func WithSandboxAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sandboxAPIKey = key
	})
}

// WithAPIURL overrides the production catalog endpoint. Ignored in the
// testing environment.
func WithAPIURL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiURL = url
	})
}

// WithStoreGraphQL sets the storefront's own GraphQL endpoint. Required for
// SubscribeStockAlert.
func WithStoreGraphQL(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.storeGraphQLURL = url
	})
}

// WithPromoTiles sets the base URL that resolves relative promo tile paths and
// the default document path.
func WithPromoTiles(baseURL, dataPath string) Option {
	return optionFunc(func(c *clientConfig) {
		c.staticBaseURL = baseURL
		c.promoTilesPath = dataPath
	})
}

// WithCDN overrides the image CDN host and the legacy path segment stripped
// from media URLs.
func WithCDN(host, legacySegment string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cdnHost = host
		c.legacySegment = legacySegment
	})
}

// WithRedisCache caches promo tile documents in Redis for ttl.
// New waits for the instance to be ready.
func WithRedisCache(addr, password string, ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.redisTTL = ttl
	})
}

// WithHTTPClient sets the HTTP client for every outbound call.
// Defaults to http.DefaultClient; bound calls with the context.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithPublisher sets the analytics collaborator receiving search lifecycle
// events. It may implement any subset of the hook interfaces.
func WithPublisher(p Publisher) Option {
	return optionFunc(func(c *clientConfig) {
		c.publisher = p
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithZapLogger receives the transport-level logs (request failures, cache
// misses). Pass nil to disable (default).
func WithZapLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.zapLogger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
