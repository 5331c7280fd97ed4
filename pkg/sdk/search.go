package livesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
)

// ProductSearch runs a product search. Visibility and, unless
// DisplayOutOfStock is "1", in-stock filters are appended after the caller's
// clauses. Lifecycle events go to the configured Publisher.
func (c *Client) ProductSearch(ctx context.Context, p SearchParams) (out Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeData("product_search", start, out.Data, err) }()

	req, err := toInternalRequest(p)
	if err != nil {
		return Result{}, fmt.Errorf("product search: %w", err)
	}

	res, err := c.searchSvc.ProductSearch(c.withLogger(ctx), c.identityFor(p.RequestID), &req)
	if err != nil {
		return Result{}, fmt.Errorf("livesearch: %w", err)
	}
	return fromInternalResult(res), nil
}

// AttributeMetadata fetches the sortable and filterable attributes of the
// storefront.
func (c *Client) AttributeMetadata(ctx context.Context) (out Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeData("attribute_metadata", start, out.Data, err) }()

	res, err := c.searchSvc.AttributeMetadata(c.withLogger(ctx), c.identity)
	if err != nil {
		return Result{}, fmt.Errorf("livesearch: %w", err)
	}
	return fromInternalResult(res), nil
}

// RefineProduct resolves the variant of sku for the selected option ids.
// qctx may be nil.
func (c *Client) RefineProduct(
	ctx context.Context, qctx *QueryContext, optionIDs []string, sku string,
) (out Result, err error) {
	start := time.Now()
	defer func() { c.obs.observeData("refine_product", start, out.Data, err) }()

	ref, err := request.NewRefine(optionIDs, sku)
	if err != nil {
		return Result{}, fmt.Errorf("refine product: %w", err)
	}

	res, err := c.searchSvc.RefineProduct(c.withLogger(ctx), c.identity, toInternalContext(qctx), ref)
	if err != nil {
		return Result{}, fmt.Errorf("livesearch: %w", err)
	}
	return fromInternalResult(res), nil
}

func (c *Client) identityFor(requestID string) domain.Identity {
	id := c.identity
	id.RequestID = requestID
	return id
}
