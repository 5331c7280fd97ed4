package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/config"
	dbRedis "github.com/kailas-cloud/livesearch/internal/db/redis"
	"github.com/kailas-cloud/livesearch/internal/domain/events"
	logpkg "github.com/kailas-cloud/livesearch/internal/logger"
	"github.com/kailas-cloud/livesearch/internal/metrics"
	"github.com/kailas-cloud/livesearch/internal/repository/tilecache"
	chiTransport "github.com/kailas-cloud/livesearch/internal/transport/chi"
	"github.com/kailas-cloud/livesearch/internal/transport/graphql"
	"github.com/kailas-cloud/livesearch/internal/transport/static"
	"github.com/kailas-cloud/livesearch/internal/transport/tracing"
	galleryuc "github.com/kailas-cloud/livesearch/internal/usecase/gallery"
	healthuc "github.com/kailas-cloud/livesearch/internal/usecase/health"
	promouc "github.com/kailas-cloud/livesearch/internal/usecase/promo"
	searchuc "github.com/kailas-cloud/livesearch/internal/usecase/search"
	subscriptionuc "github.com/kailas-cloud/livesearch/internal/usecase/subscription"
	"github.com/kailas-cloud/livesearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Tracing.ServiceName, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	endpoint := cfg.Storefront.Endpoint()
	logger.Info("Starting livesearch BFF",
		append(version.Fields(),
			zap.Int("http_port", cfg.HTTP.Port),
			zap.String("catalog_endpoint", endpoint.URL),
			zap.String("environment_id", cfg.Storefront.EnvironmentID),
			zap.Bool("cache_enabled", cfg.Cache.Enabled),
		)...,
	)

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Fatal("Failed to init tracer", zap.Error(err))
		}
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	metrics.RegisterUpstreamMetrics()

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTP.UpstreamTimeoutSec) * time.Second}

	// Catalog service
	catalog := graphql.NewCatalog(graphql.NewClient(&graphql.Config{
		Endpoint:   endpoint.URL,
		HTTPClient: httpClient,
	}))

	// Storefront stock alerts. Pass a nil interface, not a typed nil pointer,
	// when no endpoint is configured.
	var stockStore subscriptionuc.Store
	if cfg.Storefront.StoreGraphQLURL != "" {
		stockStore = graphql.NewStore(graphql.NewClient(&graphql.Config{
			Endpoint:   cfg.Storefront.StoreGraphQLURL,
			HTTPClient: httpClient,
		}))
	}

	// Promo tiles: static fetcher, optionally behind the Redis cache
	var promoSource promouc.Source = static.NewFetcher(httpClient, cfg.Storefront.StaticBaseURL)
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:          cfg.Cache.Addrs,
			Username:       cfg.Cache.Username,
			Password:       cfg.Cache.Password,
			DB:             cfg.Cache.DB,
			ClientCacheTTL: time.Duration(cfg.Cache.ClientCacheSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to cache", zap.Strings("addrs", cfg.Cache.Addrs))

		promoSource = tilecache.New(promoSource, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second, metrics.PromoCacheTotal, logger)
		cachePinger = store
	}

	// Lifecycle events: counters plus debug log lines
	publisher := events.Fanout{
		metrics.EventCounter{},
		eventLogger(logger),
	}

	server := chiTransport.NewServer(chiTransport.Services{
		Search:       searchuc.New(catalog, publisher),
		Promo:        promouc.New(promoSource, cfg.Storefront.PromoTilesPath),
		Gallery:      galleryuc.New(cfg.Images.CDNHost, cfg.Images.LegacySegment),
		Subscription: subscriptionuc.New(stockStore),
		Health:       healthuc.New(cachePinger),
	}, cfg.Storefront.Identity(), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware("/metrics"))
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// eventLogger records search input and results at debug level.
func eventLogger(logger *zap.Logger) events.Funcs {
	return events.Funcs{
		OnSearchInput: func(unitID, searchRequestID string, in events.SearchInput) {
			logger.Debug("search input",
				zap.String("unit_id", unitID),
				zap.String("search_request_id", searchRequestID),
				zap.String("phrase", in.Phrase),
				zap.Int("filters", len(in.Filter)),
				zap.Int("page_size", in.PageSize),
				zap.Int("current_page", in.CurrentPage),
			)
		},
		OnSearchResults: func(unitID, searchRequestID string, results json.RawMessage) {
			logger.Debug("search results",
				zap.String("unit_id", unitID),
				zap.String("search_request_id", searchRequestID),
				zap.Int("bytes", len(results)),
			)
		},
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ctx := logpkg.ContextWithLogger(r.Context(), logger)
			ctx = logpkg.With(ctx, zap.String("request_id", requestID))
			reqLogger := logpkg.FromContext(ctx)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
