package result

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Result is the opaque data envelope of a catalog service response.
type Result struct {
	data json.RawMessage
}

// New wraps a raw data envelope. A nil or JSON null envelope is empty.
func New(data json.RawMessage) Result {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		data = nil
	}
	return Result{data: data}
}

// Data returns the raw data envelope.
func (r *Result) Data() json.RawMessage { return r.data }

// IsEmpty reports whether the backend returned no data.
func (r *Result) IsEmpty() bool { return len(r.data) == 0 }

// Field returns one top-level member of the envelope, nil when absent or when
// the envelope is not an object.
func (r *Result) Field(name string) json.RawMessage {
	if r.IsEmpty() {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(r.data, &obj); err != nil {
		return nil
	}
	return obj[name]
}

// ProductSearch returns data.productSearch, the payload recorded for analytics.
func (r *Result) ProductSearch() json.RawMessage {
	return r.Field("productSearch")
}

// Decode unmarshals the envelope into v.
func (r *Result) Decode(v any) error {
	if r.IsEmpty() {
		return nil
	}
	if err := json.Unmarshal(r.data, v); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
