package livesearch

import (
	"context"
	"time"

	promouc "github.com/kailas-cloud/livesearch/internal/usecase/promo"
)

// CategoryPromoTiles loads the promo tile document at dataPath (the
// WithPromoTiles default when empty) and returns the tiles placed in
// categoryPath. It never fails: any error yields an empty slice and is only
// recorded by the observer.
func (c *Client) CategoryPromoTiles(ctx context.Context, dataPath, categoryPath string) []PromoTile {
	start := time.Now()

	if dataPath == "" {
		dataPath = c.promoPath
	}
	tiles, fallThrough := promouc.New(c.promoSource, dataPath).Lookup(c.withLogger(ctx), categoryPath)
	c.obs.observeTiles(start, len(tiles), fallThrough)
	return fromInternalTiles(tiles)
}
