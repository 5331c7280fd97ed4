package subscription

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/livesearch/internal/domain/alert"
)

// Store runs the stock alert mutation against the storefront.
type Store interface {
	SubscribeStock(ctx context.Context, sub alert.Subscription) (json.RawMessage, error)
}
