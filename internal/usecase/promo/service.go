package promo

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain"
	dompromo "github.com/kailas-cloud/livesearch/internal/domain/promo"
	"github.com/kailas-cloud/livesearch/internal/logger"
)

// OpPromoTiles labels promo document loads.
const OpPromoTiles = "promoTiles"

// Service resolves the promo tiles of a category.
type Service struct {
	source   Source
	dataPath string
}

// New creates a promo service. dataPath is the location of the tile document;
// when empty every lookup yields no tiles.
func New(source Source, dataPath string) *Service {
	return &Service{source: source, dataPath: dataPath}
}

// CategoryTiles returns the tiles matching categoryPath. It never fails:
// a missing path, load error or undecodable document yields an empty slice.
func (s *Service) CategoryTiles(ctx context.Context, categoryPath string) []dompromo.Tile {
	tiles, _ := s.Lookup(ctx, categoryPath)
	return tiles
}

// Lookup is CategoryTiles that also reports why the list is empty. The tiles
// are never nil, and are empty whenever err is set: ErrConfigurationMissing
// without a data path, the source error, or ErrMalformedResponse.
func (s *Service) Lookup(ctx context.Context, categoryPath string) ([]dompromo.Tile, error) {
	log := logger.FromContext(ctx)
	if s.dataPath == "" {
		err := domain.ConfigurationMissing("promo tiles data path")
		log.Debug("promo tiles disabled", zap.Error(err))
		return []dompromo.Tile{}, err
	}

	body, err := s.source.Get(ctx, OpPromoTiles, s.dataPath)
	if err != nil {
		log.Warn("promo tiles unavailable", zap.String("path", s.dataPath), zap.Error(err))
		return []dompromo.Tile{}, err
	}

	tiles, err := dompromo.Decode(body)
	if err != nil {
		err = domain.MalformedResponse(OpPromoTiles, err)
		log.Warn("promo tiles malformed", zap.String("path", s.dataPath), zap.Error(err))
		s.evict(ctx)
		return []dompromo.Tile{}, err
	}

	return dompromo.Filter(tiles, categoryPath), nil
}

func (s *Service) evict(ctx context.Context) {
	inv, ok := s.source.(Invalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(ctx, s.dataPath); err != nil {
		logger.FromContext(ctx).Warn("promo tiles eviction failed", zap.String("path", s.dataPath), zap.Error(err))
	}
}
