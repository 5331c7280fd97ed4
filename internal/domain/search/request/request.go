package request

import (
	"fmt"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	searchsort "github.com/kailas-cloud/livesearch/internal/domain/search/sort"
)

// Search parameter limits.
const (
	// MaxPhraseLength is the maximum allowed search phrase length.
	MaxPhraseLength    = 4096
	DefaultPageSize    = 24
	DefaultCurrentPage = 1
)

// ShowOutOfStock is the only displayOutOfStock value that keeps out-of-stock items.
const ShowOutOfStock = "1"

// Params is the caller intent for a product query.
type Params struct {
	Phrase            string
	PageSize          int
	CurrentPage       int
	Filter            []filter.Clause
	Sort              []searchsort.Directive
	Context           *domain.QueryContext
	CategorySearch    bool
	DisplayOutOfStock string
}

// Request is a validated product search query.
type Request struct {
	phrase            string
	pageSize          int
	currentPage       int
	filter            []filter.Clause
	sort              []searchsort.Directive
	context           *domain.QueryContext
	categorySearch    bool
	displayOutOfStock string
}

// New validates and normalizes search parameters.
// Defaults: pageSize=24, currentPage=1. An empty phrase is valid (category browsing).
func New(p Params) (Request, error) {
	if len(p.Phrase) > MaxPhraseLength {
		return Request{}, fmt.Errorf("%w: phrase too long (max %d chars)", domain.ErrInvalidRequest, MaxPhraseLength)
	}
	if len(p.Filter) > filter.MaxClauses {
		return Request{}, fmt.Errorf("%w: too many filter clauses (max %d)", domain.ErrInvalidRequest, filter.MaxClauses)
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.CurrentPage <= 0 {
		p.CurrentPage = DefaultCurrentPage
	}
	return Request{
		phrase:            p.Phrase,
		pageSize:          p.PageSize,
		currentPage:       p.CurrentPage,
		filter:            p.Filter,
		sort:              p.Sort,
		context:           p.Context,
		categorySearch:    p.CategorySearch,
		displayOutOfStock: p.DisplayOutOfStock,
	}, nil
}

// Phrase returns the free-text query.
func (r *Request) Phrase() string { return r.phrase }

// PageSize returns the number of items per page.
func (r *Request) PageSize() int { return r.pageSize }

// CurrentPage returns the 1-based page number.
func (r *Request) CurrentPage() int { return r.currentPage }

// Filter returns the caller-supplied clauses, without defaults.
func (r *Request) Filter() []filter.Clause { return r.filter }

// Sort returns the sort directives.
func (r *Request) Sort() []searchsort.Directive { return r.sort }

// Context returns the personalization context, nil when absent.
func (r *Request) Context() *domain.QueryContext { return r.context }

// CategorySearch reports whether the request browses a category.
func (r *Request) CategorySearch() bool { return r.categorySearch }

// DisplayOutOfStock returns the raw storefront flag.
func (r *Request) DisplayOutOfStock() string { return r.displayOutOfStock }

// DisplayInStockOnly converts the string flag to a boolean. Any value other
// than exactly "1", including "", "0" and "true", means in-stock only.
func (r *Request) DisplayInStockOnly() bool {
	return r.displayOutOfStock != ShowOutOfStock
}

// ComposedFilter returns the clauses sent upstream: caller clauses, visibility,
// then in-stock when DisplayInStockOnly.
func (r *Request) ComposedFilter() []filter.Clause {
	return filter.Compose(r.filter, r.categorySearch, r.DisplayInStockOnly())
}

// CustomerGroup returns the customer group header value.
func (r *Request) CustomerGroup() string {
	return domain.CustomerGroupOf(r.context)
}

// Variables is the GraphQL variables payload of a product search.
type Variables struct {
	Phrase      string                 `json:"phrase"`
	PageSize    int                    `json:"pageSize"`
	CurrentPage int                    `json:"currentPage"`
	Filter      []filter.Clause        `json:"filter"`
	Sort        []searchsort.Directive `json:"sort"`
	Context     *domain.QueryContext   `json:"context,omitempty"`
}

// Variables builds the outgoing variables with composed filters.
func (r *Request) Variables() Variables {
	sorts := r.sort
	if sorts == nil {
		sorts = []searchsort.Directive{}
	}
	return Variables{
		Phrase:      r.phrase,
		PageSize:    r.pageSize,
		CurrentPage: r.currentPage,
		Filter:      r.ComposedFilter(),
		Sort:        sorts,
		Context:     r.context,
	}
}
