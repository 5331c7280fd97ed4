package livesearch

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/image"
	dompromo "github.com/kailas-cloud/livesearch/internal/domain/promo"
	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
	"github.com/kailas-cloud/livesearch/internal/domain/search/result"
	searchsort "github.com/kailas-cloud/livesearch/internal/domain/search/sort"
)

func toInternalRequest(p SearchParams) (request.Request, error) {
	clauses, err := toInternalFilters(p.Filter)
	if err != nil {
		return request.Request{}, err
	}
	sorts, err := toInternalSorts(p.Sort)
	if err != nil {
		return request.Request{}, err
	}
	return request.New(request.Params{ //nolint:wrapcheck // already wraps ErrInvalidRequest
		Phrase:            p.Phrase,
		PageSize:          p.PageSize,
		CurrentPage:       p.CurrentPage,
		Filter:            clauses,
		Sort:              sorts,
		Context:           toInternalContext(p.Context),
		CategorySearch:    p.CategorySearch,
		DisplayOutOfStock: p.DisplayOutOfStock,
	})
}

func toInternalFilters(in []FilterClause) ([]filter.Clause, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]filter.Clause, 0, len(in))
	for i, c := range in {
		var (
			clause filter.Clause
			err    error
		)
		switch {
		case len(c.In) > 0:
			clause, err = filter.NewIn(c.Attribute, c.In...)
		case c.Eq != "":
			clause, err = filter.NewEq(c.Attribute, c.Eq)
		case c.Range != nil:
			clause, err = filter.NewRange(c.Attribute, filter.Range{From: c.Range.From, To: c.Range.To})
		default:
			err = errors.New("needs In, Eq or Range")
		}
		if err != nil {
			return nil, fmt.Errorf("%w: filter[%d]: %w", domain.ErrInvalidRequest, i, err)
		}
		out = append(out, clause)
	}
	return out, nil
}

func toInternalSorts(in []SortDirective) ([]searchsort.Directive, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]searchsort.Directive, 0, len(in))
	for i, s := range in {
		d, err := searchsort.New(s.Attribute, searchsort.Direction(s.Direction))
		if err != nil {
			return nil, fmt.Errorf("%w: sort[%d]: %w", domain.ErrInvalidRequest, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func toInternalContext(c *QueryContext) *domain.QueryContext {
	if c == nil {
		return nil
	}
	history := make([]domain.ViewHistoryEntry, len(c.UserViewHistory))
	for i, v := range c.UserViewHistory {
		history[i] = domain.ViewHistoryEntry{SKU: v.SKU, DateTime: v.DateTime}
	}
	return &domain.QueryContext{CustomerGroup: c.CustomerGroup, UserViewHistory: history}
}

func toInternalMedia(in []MediaItem) []image.MediaItem {
	out := make([]image.MediaItem, len(in))
	for i, m := range in {
		out[i] = image.MediaItem{URL: m.URL, Label: m.Label}
	}
	return out
}

func fromInternalResult(r result.Result) Result {
	return Result{Data: r.Data()}
}

func fromInternalImages(in []image.Resolved) []ResolvedImage {
	out := make([]ResolvedImage, len(in))
	for i, r := range in {
		out[i] = ResolvedImage{Src: r.Src, Srcset: r.Srcset}
	}
	return out
}

func fromInternalTiles(in []dompromo.Tile) []PromoTile {
	out := make([]PromoTile, len(in))
	for i, t := range in {
		out[i] = PromoTile{Path: t.Path, Destination: t.Destination, Image: t.Image, Position: t.Position}
	}
	return out
}
