package sort

import (
	"encoding/json"
	"testing"
)

func TestDirection_IsValid(t *testing.T) {
	tests := []struct {
		d    Direction
		want bool
	}{
		{Ascending, true},
		{Descending, true},
		{"asc", false},
		{"", false},
		{"sideways", false},
	}
	for _, tt := range tests {
		if got := tt.d.IsValid(); got != tt.want {
			t.Errorf("Direction(%q).IsValid() = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	d, err := New("price", "desc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Attribute() != "price" || d.Direction() != Descending {
		t.Errorf("got %+v", d)
	}
	if _, err := New("", Ascending); err == nil {
		t.Error("expected error for empty attribute")
	}
	if _, err := New("price", "up"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

func TestDirective_JSON(t *testing.T) {
	d, _ := New("relevance", Descending)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"attribute":"relevance","direction":"DESC"}` {
		t.Errorf("got %s", data)
	}

	var back Directive
	if err := json.Unmarshal([]byte(`{"attribute":"name","direction":"asc"}`), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Direction() != Ascending {
		t.Errorf("Direction() = %q", back.Direction())
	}
}
