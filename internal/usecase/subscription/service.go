package subscription

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/alert"
	"github.com/kailas-cloud/livesearch/internal/logger"
)

// Service registers back-in-stock alerts.
type Service struct {
	store Store
}

// New creates a subscription service. store is nil when no storefront
// endpoint is configured.
func New(store Store) *Service {
	return &Service{store: store}
}

// Subscribe registers sub and returns the storefront confirmation message,
// which may be empty.
func (s *Service) Subscribe(ctx context.Context, sub alert.Subscription) (string, error) {
	if s.store == nil {
		return "", domain.ConfigurationMissing("store graphql endpoint")
	}

	data, err := s.store.SubscribeStock(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("subscribe stock alert: %w", err)
	}

	msg, ok := alert.ResponseMessage(data)
	if !ok {
		logger.FromContext(ctx).Info("stock alert without response message",
			zap.Int("product_id", sub.ProductID),
		)
	}
	return msg, nil
}
