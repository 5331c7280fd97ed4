package promo

import "context"

// Source loads the static promo tile document.
type Source interface {
	Get(ctx context.Context, op, path string) ([]byte, error)
}

// Invalidator is implemented by caching sources. A document that loads but
// does not decode is evicted so the next lookup refetches it.
type Invalidator interface {
	Invalidate(ctx context.Context, path string) error
}
