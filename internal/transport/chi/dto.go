package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/image"
	dompromo "github.com/kailas-cloud/livesearch/internal/domain/promo"
	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	searchsort "github.com/kailas-cloud/livesearch/internal/domain/search/sort"
)

type searchBody struct {
	Phrase            string                 `json:"phrase"`
	PageSize          int                    `json:"pageSize"`
	CurrentPage       int                    `json:"currentPage"`
	Filter            []filter.Clause        `json:"filter"`
	Sort              []searchsort.Directive `json:"sort"`
	Context           *domain.QueryContext   `json:"context"`
	CategorySearch    bool                   `json:"categorySearch"`
	DisplayOutOfStock string                 `json:"displayOutOfStock"`
}

type refineBody struct {
	OptionIDs []string             `json:"optionIds"`
	SKU       string               `json:"sku"`
	Context   *domain.QueryContext `json:"context"`
}

type imagesBody struct {
	Images      []image.MediaItem `json:"images"`
	TopImageURL string            `json:"topImageUrl"`
	Amount      int               `json:"amount"`
	BaseWidth   int               `json:"baseWidth"`
}

type stockAlertBody struct {
	Email     string `json:"email"`
	Agree     bool   `json:"agree"`
	ProductID int    `json:"productId"`
}

// envelope mirrors the catalog service data envelope.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

type promoResponse struct {
	Data []dompromo.Tile `json:"data"`
}

type imagesResponse struct {
	URLs   []string         `json:"urls"`
	Images []image.Resolved `json:"images"`
}

type stockAlertResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
