package request

import (
	"fmt"

	"github.com/kailas-cloud/livesearch/internal/domain"
)

// Refine selects a configurable product variant.
type Refine struct {
	OptionIDs []string `json:"optionIds"`
	SKU       string   `json:"sku"`
}

// NewRefine validates a refine query. A nil option list is sent as [].
func NewRefine(optionIDs []string, sku string) (Refine, error) {
	if sku == "" {
		return Refine{}, fmt.Errorf("%w: sku is required", domain.ErrInvalidRequest)
	}
	if optionIDs == nil {
		optionIDs = []string{}
	}
	return Refine{OptionIDs: optionIDs, SKU: sku}, nil
}
