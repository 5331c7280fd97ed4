package tilecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/db"
	"github.com/kailas-cloud/livesearch/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "promo_tiles:"

// Source loads a static document.
type Source interface {
	Get(ctx context.Context, op, path string) ([]byte, error)
}

// store is the consumer interface for the document cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedSource caches static documents in a key-value store.
type CachedSource struct {
	inner      Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"evict"), passed explicitly.
func New(
	inner Source,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSource {
	return &CachedSource{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Get returns the cached document or loads it from the inner source.
// Cache failures are logged and never fail the call.
func (c *CachedSource) Get(ctx context.Context, op, path string) ([]byte, error) {
	key := c.cacheKey(path)

	if body, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return body, nil
	}

	c.incCache("miss")

	body, err := c.inner.Get(ctx, op, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", op, err)
	}

	// Only well-formed documents are cached.
	if json.Valid(body) {
		c.putToCache(ctx, key, body)
	}
	return body, nil
}

// Invalidate drops the cached document of path. Callers evict documents that
// are valid JSON but not a promo tile document.
func (c *CachedSource) Invalidate(ctx context.Context, path string) error {
	if err := c.store.Del(ctx, c.cacheKey(path)); err != nil {
		return fmt.Errorf("evict promo tiles: %w", err)
	}
	c.incCache("evict")
	return nil
}

func (c *CachedSource) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedSource) cacheKey(path string) string {
	h := sha256.Sum256([]byte(path))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedSource) getFromCache(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached promo tiles", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CachedSource) putToCache(ctx context.Context, key string, body []byte) {
	if err := c.store.SetWithTTL(ctx, key, body, c.ttl); err != nil {
		c.logger.Warn("Failed to cache promo tiles", zap.String("key", key), zap.Error(err))
	}
}
