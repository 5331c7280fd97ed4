package gallery

import (
	"fmt"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/image"
)

// Limits on caller-controlled sizes.
const (
	DefaultBaseWidth = 200
	MaxBaseWidth     = 4096
	MaxAmount        = 50
)

// Query asks for the gallery of one product.
type Query struct {
	Images      []image.MediaItem
	TopImageURL string
	// Amount caps the gallery. Zero means the default.
	Amount int
	// BaseWidth is the 1x rendering width. Zero means the default.
	BaseWidth int
}

// Gallery is the resolved product gallery.
type Gallery struct {
	URLs   []string
	Images []image.Resolved
}

// Service resolves product galleries onto the CDN.
type Service struct {
	rewriter image.Rewriter
}

// New creates a gallery service. Empty arguments take the CDN defaults.
func New(cdnHost, legacySegment string) *Service {
	return &Service{rewriter: image.NewRewriter(cdnHost, legacySegment)}
}

// Resolve rewrites the gallery URLs and builds responsive sets for them.
func (s *Service) Resolve(q Query) (Gallery, error) {
	amount := q.Amount
	if amount == 0 {
		amount = image.DefaultGalleryAmount
	}
	if amount < 0 || amount > MaxAmount {
		return Gallery{}, fmt.Errorf("%w: amount must be between 1 and %d", domain.ErrInvalidRequest, MaxAmount)
	}

	width := q.BaseWidth
	if width == 0 {
		width = DefaultBaseWidth
	}
	if width < 0 || width > MaxBaseWidth {
		return Gallery{}, fmt.Errorf("%w: base width must be between 1 and %d", domain.ErrInvalidRequest, MaxBaseWidth)
	}

	urls := s.rewriter.GalleryURLs(q.Images, amount, q.TopImageURL)
	return Gallery{
		URLs:   urls,
		Images: image.ResponsiveSet(urls, width),
	}, nil
}
