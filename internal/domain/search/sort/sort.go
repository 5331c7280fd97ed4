package sort

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction is the sort order of a directive.
type Direction string

// Sort directions accepted by the catalog service.
const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Ascending || d == Descending
}

// Directive orders results by one attribute.
type Directive struct {
	attribute string
	direction Direction
}

// New validates a sort directive. Direction is case-insensitive.
func New(attribute string, direction Direction) (Directive, error) {
	if attribute == "" {
		return Directive{}, fmt.Errorf("sort attribute is required")
	}
	d := Direction(strings.ToUpper(string(direction)))
	if !d.IsValid() {
		return Directive{}, fmt.Errorf("invalid sort direction: %q", direction)
	}
	return Directive{attribute: attribute, direction: d}, nil
}

// Attribute returns the sorted attribute.
func (d Directive) Attribute() string { return d.attribute }

// Direction returns the sort order.
func (d Directive) Direction() Direction { return d.direction }

type directiveJSON struct {
	Attribute string    `json:"attribute"`
	Direction Direction `json:"direction"`
}

// MarshalJSON encodes the directive in the catalog service shape.
func (d Directive) MarshalJSON() ([]byte, error) {
	return json.Marshal(directiveJSON{Attribute: d.attribute, Direction: d.direction})
}

// UnmarshalJSON decodes and validates a directive.
func (d *Directive) UnmarshalJSON(data []byte) error {
	var raw directiveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // decoder error is already descriptive
	}
	parsed, err := New(raw.Attribute, raw.Direction)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
