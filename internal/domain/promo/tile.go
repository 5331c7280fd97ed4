package promo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tile is a merchandising tile placed between products of a category listing.
type Tile struct {
	Path        string `json:"path"`
	Destination string `json:"destination"`
	Image       string `json:"image"`
	Position    string `json:"position"`
}

// Decode parses the static promo tile document {"data": [...]}. Each tile is
// decoded on its own: one tile of the wrong shape (a numeric position, say)
// is skipped and the rest survive. Only a document whose data member is not
// an array fails. A null or missing data member yields no tiles.
func Decode(body []byte) ([]Tile, error) {
	var doc struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode promo document: %w", err)
	}

	tiles := make([]Tile, 0, len(doc.Data))
	for _, raw := range doc.Data {
		var t Tile
		if json.Unmarshal(raw, &t) != nil {
			continue
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// complete reports whether every placement field is set.
func (t Tile) complete() bool {
	return t.Path != "" && t.Destination != "" && t.Image != "" && t.Position != ""
}

// Filter keeps complete tiles whose path is a prefix of categoryPath.
// Both paths lose one leading and one trailing slash and are compared
// upper-cased. The result is never nil.
func Filter(tiles []Tile, categoryPath string) []Tile {
	// Caser is stateful, one per call.
	upper := cases.Upper(language.Und)
	category := upper.String(trimSlash(categoryPath))

	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if !t.complete() {
			continue
		}
		if strings.HasPrefix(category, upper.String(trimSlash(t.Path))) {
			out = append(out, t)
		}
	}
	return out
}

// AtPosition returns the tile placed at the 1-based list index n.
func AtPosition(tiles []Tile, n int) (Tile, bool) {
	pos := strconv.Itoa(n)
	for _, t := range tiles {
		if t.Position == pos {
			return t, true
		}
	}
	return Tile{}, false
}

func trimSlash(s string) string {
	s = strings.TrimPrefix(s, "/")
	return strings.TrimSuffix(s, "/")
}
