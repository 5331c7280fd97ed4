package livesearch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/db"
	dbRedis "github.com/kailas-cloud/livesearch/internal/db/redis"
	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/alert"
	"github.com/kailas-cloud/livesearch/internal/domain/image"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
	"github.com/kailas-cloud/livesearch/internal/domain/search/result"
	"github.com/kailas-cloud/livesearch/internal/logger"
	"github.com/kailas-cloud/livesearch/internal/metrics"
	"github.com/kailas-cloud/livesearch/internal/repository/tilecache"
	"github.com/kailas-cloud/livesearch/internal/transport/graphql"
	"github.com/kailas-cloud/livesearch/internal/transport/static"
	galleryuc "github.com/kailas-cloud/livesearch/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/livesearch/internal/usecase/health"
	promouc "github.com/kailas-cloud/livesearch/internal/usecase/promo"
	searchuc "github.com/kailas-cloud/livesearch/internal/usecase/search"
	subscriptionuc "github.com/kailas-cloud/livesearch/internal/usecase/subscription"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultPromoCacheTTL    = 5 * time.Minute
)

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	ProductSearch(ctx context.Context, id domain.Identity, req *request.Request) (result.Result, error)
	AttributeMetadata(ctx context.Context, id domain.Identity) (result.Result, error)
	RefineProduct(
		ctx context.Context, id domain.Identity, qctx *domain.QueryContext, ref request.Refine,
	) (result.Result, error)
}

type galleryUseCase interface {
	Resolve(q galleryuc.Query) (galleryuc.Gallery, error)
}

type subscriptionUseCase interface {
	Subscribe(ctx context.Context, sub alert.Subscription) (string, error)
}

// Client is the livesearch SDK entry point. It is safe for concurrent use.
type Client struct {
	identity       domain.Identity
	store          db.Store
	searchSvc      searchUseCase
	gallerySvc     galleryUseCase
	subscriptionUC subscriptionUseCase
	healthSvc      healthUseCase
	promoSource    promouc.Source
	promoPath      string
	stockAlerts    bool
	rewriter       image.Rewriter
	zapLogger      *zap.Logger
	obs            *observer
}

// New creates a Client. Environment id and an API key are required and
// reported as ErrConfigurationMissing. The context bounds the readiness check
// of the optional Redis cache.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{redisTTL: defaultPromoCacheTTL}
	for _, o := range opts {
		o.apply(cfg)
	}

	endpoint := domain.ResolveEndpoint(cfg.environmentType, cfg.apiURL, cfg.apiKey, cfg.sandboxAPIKey)
	if cfg.environmentID == "" {
		return nil, fmt.Errorf("livesearch: %w", domain.ConfigurationMissing("environment id (use WithEnvironment)"))
	}
	if endpoint.APIKey == "" {
		return nil, fmt.Errorf("livesearch: %w", domain.ConfigurationMissing("api key (use WithAPIKey)"))
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var promoSource promouc.Source = static.NewFetcher(cfg.httpClient, cfg.staticBaseURL)
	var store db.Store
	if len(cfg.redisAddrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("livesearch: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("livesearch: redis not ready: %w", err)
		}
		promoSource = tilecache.New(promoSource, s, cfg.redisTTL, metrics.PromoCacheTotal, zapOrNop(cfg.zapLogger))
		store = s
	}

	// Pass nil interface (not typed nil pointer) when alerts are not configured.
	var stockStore subscriptionuc.Store
	if cfg.storeGraphQLURL != "" {
		stockStore = graphql.NewStore(graphql.NewClient(&graphql.Config{
			Endpoint:   cfg.storeGraphQLURL,
			HTTPClient: cfg.httpClient,
		}))
	}

	catalog := graphql.NewCatalog(graphql.NewClient(&graphql.Config{
		Endpoint:   endpoint.URL,
		HTTPClient: cfg.httpClient,
	}))

	var pinger healthuc.Pinger
	if store != nil {
		pinger = store
	}

	return &Client{
		identity: domain.Identity{
			EnvironmentID: cfg.environmentID,
			WebsiteCode:   cfg.websiteCode,
			StoreCode:     cfg.storeCode,
			StoreViewCode: cfg.storeViewCode,
			APIKey:        endpoint.APIKey,
		},
		store:          store,
		searchSvc:      searchuc.New(catalog, cfg.publisher),
		gallerySvc:     galleryuc.New(cfg.cdnHost, cfg.legacySegment),
		subscriptionUC: subscriptionuc.New(stockStore),
		healthSvc:      healthuc.New(pinger),
		promoSource:    promoSource,
		promoPath:      cfg.promoTilesPath,
		stockAlerts:    stockStore != nil,
		rewriter:       image.NewRewriter(cfg.cdnHost, cfg.legacySegment),
		zapLogger:      cfg.zapLogger,
		obs:            obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// withLogger attaches the configured zap logger for internal layers.
func (c *Client) withLogger(ctx context.Context) context.Context {
	if c.zapLogger == nil {
		return ctx
	}
	return logger.ContextWithLogger(ctx, c.zapLogger)
}

func zapOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
