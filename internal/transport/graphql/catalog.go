package graphql

import (
	"context"
	"encoding/json"

	"github.com/kailas-cloud/livesearch/internal/domain/alert"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
)

// Catalog runs the catalog service operations over a Client.
type Catalog struct {
	client *Client
}

// NewCatalog wraps client.
func NewCatalog(client *Client) *Catalog {
	return &Catalog{client: client}
}

// ProductSearch implements search.Catalog.
func (c *Catalog) ProductSearch(
	ctx context.Context, headers map[string]string, vars request.Variables,
) (json.RawMessage, error) {
	return c.client.Do(ctx, Request{
		Operation: OpProductSearch,
		Query:     ProductSearchQuery,
		Variables: vars,
		Headers:   headers,
	})
}

// AttributeMetadata implements search.Catalog. The query takes no variables.
func (c *Catalog) AttributeMetadata(ctx context.Context, headers map[string]string) (json.RawMessage, error) {
	return c.client.Do(ctx, Request{
		Operation: OpAttributeMetadata,
		Query:     AttributeMetadataQuery,
		Headers:   headers,
	})
}

// RefineProduct implements search.Catalog.
func (c *Catalog) RefineProduct(
	ctx context.Context, headers map[string]string, vars request.Refine,
) (json.RawMessage, error) {
	return c.client.Do(ctx, Request{
		Operation: OpRefineProduct,
		Query:     RefineProductQuery,
		Variables: vars,
		Headers:   headers,
	})
}

// Store runs storefront mutations against the store GraphQL endpoint.
type Store struct {
	client *Client
}

// NewStore wraps client.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// SubscribeStock implements subscription.Store. Only Content-Type is sent.
func (s *Store) SubscribeStock(ctx context.Context, sub alert.Subscription) (json.RawMessage, error) {
	return s.client.Do(ctx, Request{
		Operation: OpStockSubscribe,
		Query:     StockSubscribeMutation,
		Variables: sub,
		Headers:   map[string]string{"Content-Type": "application/json"},
	})
}
