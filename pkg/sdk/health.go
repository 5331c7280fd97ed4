package livesearch

import (
	"context"

	healthuc "github.com/kailas-cloud/livesearch/internal/usecase/health"
)

// Cache states reported by HealthStatus.Cache.
const (
	CacheDisabled = "disabled"
	CacheOK       = "ok"
	CacheDown     = "error"
)

// HealthStatus describes the optional collaborators of a Client. Search and
// images never depend on any of them.
type HealthStatus struct {
	// Status is "ok", or "degraded" when the promo tile cache does not answer.
	// Promo tiles then fall through to the static document.
	Status string
	// Cache is CacheDisabled without WithRedisCache, else the ping result.
	Cache string
	// StockAlerts is false until WithStoreGraphQL is set; SubscribeStockAlert
	// then fails with ErrConfigurationMissing.
	StockAlerts bool
	// PromoTiles is false without a default document path; CategoryPromoTiles
	// then needs an explicit dataPath.
	PromoTiles bool
}

// Health pings the promo tile cache and reports which optional features are
// configured.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)

	cache := CacheDisabled
	if res, ok := report.Checks[healthuc.CheckCache]; ok {
		cache = CacheOK
		if res != healthuc.CheckOK {
			cache = CacheDown
		}
	}

	return HealthStatus{
		Status:      string(report.Status),
		Cache:       cache,
		StockAlerts: c.stockAlerts,
		PromoTiles:  c.promoPath != "",
	}
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
