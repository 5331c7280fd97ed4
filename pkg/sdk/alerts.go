package livesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/livesearch/internal/domain/alert"
)

// SubscribeStockAlert subscribes email to the back-in-stock alert of a
// product and returns the storefront's confirmation message, which may be
// empty. Requires WithStoreGraphQL.
func (c *Client) SubscribeStockAlert(
	ctx context.Context, email string, agree bool, productID int,
) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("stock_alert", start, err) }()

	sub, err := alert.New(email, agree, productID)
	if err != nil {
		return "", fmt.Errorf("stock alert: %w", err)
	}

	msg, err := c.subscriptionUC.Subscribe(c.withLogger(ctx), sub)
	if err != nil {
		return "", fmt.Errorf("livesearch: %w", err)
	}
	return msg, nil
}
