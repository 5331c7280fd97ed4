package livesearch

import (
	"encoding/json"
	"strings"
)

// Environment types accepted by WithEnvironment.
const (
	EnvironmentProduction = "production"
	// EnvironmentTesting routes every call to the sandbox catalog service.
	EnvironmentTesting = "testing"
)

// ShowOutOfStock is the only DisplayOutOfStock value that keeps out-of-stock
// products in results.
const ShowOutOfStock = "1"

// SearchParams is a product search. Zero PageSize and CurrentPage take the
// defaults 24 and 1.
type SearchParams struct {
	Phrase      string
	PageSize    int
	CurrentPage int
	Filter      []FilterClause
	Sort        []SortDirective
	Context     *QueryContext
	// CategorySearch selects Catalog visibility instead of Search.
	CategorySearch bool
	// DisplayOutOfStock is the storefront flag. Anything but "1" means
	// in-stock only.
	DisplayOutOfStock string
	// RequestID pins X-Request-Id for this call.
	RequestID string
}

// FilterClause restricts one attribute. Exactly one of In, Eq or Range is set.
type FilterClause struct {
	Attribute string
	In        []string
	Eq        string
	Range     *Range
}

// Range bounds a numeric attribute. Nil bounds are open.
type Range struct {
	From *float64
	To   *float64
}

// SortDirective orders results by one attribute. Direction is ASC or DESC.
type SortDirective struct {
	Attribute string
	Direction string
}

// QueryContext carries personalization data.
type QueryContext struct {
	CustomerGroup   string
	UserViewHistory []ViewedProduct
}

// ViewedProduct is one entry of the shopper's view history.
type ViewedProduct struct {
	SKU      string
	DateTime string
}

// Result is the data envelope returned by the catalog service, passed through
// unmodified.
type Result struct {
	Data json.RawMessage
}

// Decode unmarshals the data envelope into v.
func (r Result) Decode(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v) //nolint:wrapcheck // caller-facing decode error
}

// MediaItem is a product image.
type MediaItem struct {
	URL   string
	Label string
}

// ResolvedImage is an image ready for an img element.
type ResolvedImage struct {
	Src    string
	Srcset []string
}

// SrcsetAttr joins the srcset entries for an HTML srcset attribute.
func (r ResolvedImage) SrcsetAttr() string {
	return strings.Join(r.Srcset, ", ")
}

// PromoTile is a merchandising tile placed in a category listing.
type PromoTile struct {
	Path        string
	Destination string
	Image       string
	// Position is the 1-based list index the tile occupies.
	Position string
}
