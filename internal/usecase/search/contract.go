package search

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
)

// Catalog runs catalog service queries and returns the raw data envelope.
type Catalog interface {
	ProductSearch(ctx context.Context, headers map[string]string, vars request.Variables) (json.RawMessage, error)
	AttributeMetadata(ctx context.Context, headers map[string]string) (json.RawMessage, error)
	RefineProduct(ctx context.Context, headers map[string]string, vars request.Refine) (json.RawMessage, error)
}
