package filter

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MaxClauses is the maximum number of caller-supplied clauses per request.
const MaxClauses = 64

// Search types used by the default visibility clause.
const (
	SearchTypeCatalog = "Catalog"
	SearchTypeSearch  = "Search"
	// VisibilityBoth is a single backend token, not two values.
	VisibilityBoth = "Catalog, Search"
)

// Default clause attributes.
const (
	AttributeVisibility = "visibility"
	AttributeInStock    = "inStock"
)

// Clause is a single attribute constraint: an inclusion set, an equality
// value or a numeric range.
type Clause struct {
	attribute string
	in        []string
	eq        string
	rng       *Range
}

// NewIn creates an inclusion clause.
func NewIn(attribute string, values ...string) (Clause, error) {
	if attribute == "" {
		return Clause{}, fmt.Errorf("filter attribute is required")
	}
	if len(values) == 0 {
		return Clause{}, fmt.Errorf("in values are required for attribute %q", attribute)
	}
	return Clause{attribute: attribute, in: values}, nil
}

// NewEq creates an equality clause.
func NewEq(attribute, value string) (Clause, error) {
	if attribute == "" {
		return Clause{}, fmt.Errorf("filter attribute is required")
	}
	if value == "" {
		return Clause{}, fmt.Errorf("eq value is required for attribute %q", attribute)
	}
	return Clause{attribute: attribute, eq: value}, nil
}

// NewRange creates a numeric range clause.
func NewRange(attribute string, r Range) (Clause, error) {
	if attribute == "" {
		return Clause{}, fmt.Errorf("filter attribute is required")
	}
	if r.From == nil && r.To == nil {
		return Clause{}, fmt.Errorf("range for attribute %q needs from or to", attribute)
	}
	return Clause{attribute: attribute, rng: &r}, nil
}

// Attribute returns the constrained attribute name.
func (c Clause) Attribute() string { return c.attribute }

// In returns the inclusion set.
func (c Clause) In() []string { return c.in }

// Eq returns the equality value.
func (c Clause) Eq() string { return c.eq }

// Range returns the numeric range, nil for non-range clauses.
func (c Clause) Range() *Range { return c.rng }

// Range bounds a numeric attribute. Nil bounds are open.
type Range struct {
	From *float64 `json:"from,omitempty"`
	To   *float64 `json:"to,omitempty"`
}

type clauseJSON struct {
	Attribute string   `json:"attribute"`
	In        []string `json:"in,omitempty"`
	Eq        string   `json:"eq,omitempty"`
	Range     *Range   `json:"range,omitempty"`
}

// MarshalJSON encodes the clause in the catalog service filter shape.
func (c Clause) MarshalJSON() ([]byte, error) {
	return json.Marshal(clauseJSON{
		Attribute: c.attribute,
		In:        c.in,
		Eq:        c.eq,
		Range:     c.rng,
	})
}

// UnmarshalJSON decodes and validates a clause.
func (c *Clause) UnmarshalJSON(data []byte) error {
	var raw clauseJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // decoder error is already descriptive
	}
	var (
		parsed Clause
		err    error
	)
	switch {
	case len(raw.In) > 0:
		parsed, err = NewIn(raw.Attribute, raw.In...)
	case raw.Eq != "":
		parsed, err = NewEq(raw.Attribute, raw.Eq)
	case raw.Range != nil:
		parsed, err = NewRange(raw.Attribute, *raw.Range)
	default:
		err = errors.New("filter clause needs in, eq or range")
	}
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SearchType returns "Catalog" for category browsing and "Search" otherwise.
func SearchType(categorySearch bool) string {
	if categorySearch {
		return SearchTypeCatalog
	}
	return SearchTypeSearch
}

// Visibility returns the default visibility clause for a search type.
func Visibility(categorySearch bool) Clause {
	return Clause{
		attribute: AttributeVisibility,
		in:        []string{SearchType(categorySearch), VisibilityBoth},
	}
}

// InStock returns the in-stock clause. The value is the string "true".
func InStock() Clause {
	return Clause{attribute: AttributeInStock, eq: "true"}
}

// Compose returns caller clauses followed by the visibility clause and, when
// inStockOnly, the in-stock clause. The caller's slice is copied, never
// appended to.
func Compose(clauses []Clause, categorySearch, inStockOnly bool) []Clause {
	out := make([]Clause, 0, len(clauses)+2)
	out = append(out, clauses...)
	out = append(out, Visibility(categorySearch))
	if inStockOnly {
		out = append(out, InStock())
	}
	return out
}
