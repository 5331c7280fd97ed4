package livesearch

import (
	"fmt"

	"github.com/kailas-cloud/livesearch/internal/domain/image"
	galleryuc "github.com/kailas-cloud/livesearch/internal/usecase/gallery"
)

// DefaultGalleryAmount is the gallery size used when amount is zero.
const DefaultGalleryAmount = image.DefaultGalleryAmount

// GalleryURLs rewrites product images onto the CDN, prepends topImageURL
// when set, and keeps at most amount URLs (DefaultGalleryAmount when zero).
// Items without a URL are skipped.
// The top image is not de-duplicated against the gallery.
func (c *Client) GalleryURLs(images []MediaItem, amount int, topImageURL string) []string {
	return c.rewriter.GalleryURLs(toInternalMedia(images), amount, topImageURL)
}

// Gallery rewrites the gallery and builds a responsive set per URL. Zero
// amount and baseWidth take the defaults; out-of-range values fail with
// ErrInvalidRequest.
func (c *Client) Gallery(images []MediaItem, topImageURL string, amount, baseWidth int) ([]ResolvedImage, error) {
	g, err := c.gallerySvc.Resolve(galleryuc.Query{
		Images:      toInternalMedia(images),
		TopImageURL: topImageURL,
		Amount:      amount,
		BaseWidth:   baseWidth,
	})
	if err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	return fromInternalImages(g.Images), nil
}

// ResponsiveImages builds src and 1x, 2x, 3x srcset variants for each URL.
func ResponsiveImages(urls []string, baseWidth int) []ResolvedImage {
	return fromInternalImages(image.ResponsiveSet(urls, baseWidth))
}
