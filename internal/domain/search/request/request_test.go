package request

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	searchsort "github.com/kailas-cloud/livesearch/internal/domain/search/sort"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New(Params{Phrase: "coffee"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Phrase() != "coffee" {
		t.Errorf("Phrase() = %q", r.Phrase())
	}
	if r.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", r.PageSize(), DefaultPageSize)
	}
	if r.CurrentPage() != DefaultCurrentPage {
		t.Errorf("CurrentPage() = %d, want %d", r.CurrentPage(), DefaultCurrentPage)
	}
	if r.CategorySearch() {
		t.Error("CategorySearch() = true")
	}
	if r.CustomerGroup() != "" {
		t.Errorf("CustomerGroup() = %q", r.CustomerGroup())
	}
}

func TestNew_EmptyPhraseAllowed(t *testing.T) {
	if _, err := New(Params{CategorySearch: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_ExplicitValues(t *testing.T) {
	r, err := New(Params{
		Phrase:      "pods",
		PageSize:    12,
		CurrentPage: 3,
		Context:     &domain.QueryContext{CustomerGroup: "grp"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.PageSize() != 12 || r.CurrentPage() != 3 {
		t.Errorf("pagination = %d/%d", r.PageSize(), r.CurrentPage())
	}
	if r.CustomerGroup() != "grp" {
		t.Errorf("CustomerGroup() = %q", r.CustomerGroup())
	}
}

func TestNew_PhraseTooLong(t *testing.T) {
	_, err := New(Params{Phrase: strings.Repeat("a", MaxPhraseLength+1)})
	if err == nil {
		t.Fatal("expected error for long phrase")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
	if !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestNew_TooManyClauses(t *testing.T) {
	clauses := make([]filter.Clause, filter.MaxClauses+1)
	if _, err := New(Params{Filter: clauses}); err == nil {
		t.Fatal("expected error for too many clauses")
	}
}

func TestDisplayInStockOnly(t *testing.T) {
	tests := []struct {
		flag string
		want bool
	}{
		{"1", false},
		{"", true},
		{"0", true},
		{"true", true},
		{"01", true},
		{" 1", true},
	}
	for _, tt := range tests {
		t.Run("flag="+tt.flag, func(t *testing.T) {
			r, _ := New(Params{DisplayOutOfStock: tt.flag})
			if got := r.DisplayInStockOnly(); got != tt.want {
				t.Errorf("DisplayInStockOnly() = %v, want %v", got, tt.want)
			}

			count := 0
			for _, c := range r.ComposedFilter() {
				if c.Attribute() == filter.AttributeInStock {
					count++
				}
			}
			wantCount := 0
			if tt.want {
				wantCount = 1
			}
			if count != wantCount {
				t.Errorf("in-stock clauses = %d, want %d", count, wantCount)
			}
		})
	}
}

func TestVariables_JSON(t *testing.T) {
	brand, _ := filter.NewEq("brand", "acme")
	price, _ := searchsort.New("price", searchsort.Ascending)
	r, _ := New(Params{
		Phrase:            "latte",
		Filter:            []filter.Clause{brand},
		Sort:              []searchsort.Directive{price},
		DisplayOutOfStock: "1",
		CategorySearch:    true,
	})

	data, err := json.Marshal(r.Variables())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"phrase":"latte","pageSize":24,"currentPage":1,` +
		`"filter":[{"attribute":"brand","eq":"acme"},{"attribute":"visibility","in":["Catalog","Catalog, Search"]}],` +
		`"sort":[{"attribute":"price","direction":"ASC"}]}`
	if string(data) != want {
		t.Errorf("variables:\ngot:  %s\nwant: %s", data, want)
	}
	if len(r.Filter()) != 1 {
		t.Errorf("Filter() must stay caller-only, got %d clauses", len(r.Filter()))
	}
}

func TestVariables_EmptySortIsArray(t *testing.T) {
	r, _ := New(Params{})
	data, _ := json.Marshal(r.Variables())
	if !strings.Contains(string(data), `"sort":[]`) {
		t.Errorf("expected empty sort array, got %s", data)
	}
}

func TestNewRefine(t *testing.T) {
	r, err := NewRefine(nil, "MUG-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := json.Marshal(r)
	if string(data) != `{"optionIds":[],"sku":"MUG-1"}` {
		t.Errorf("json = %s", data)
	}

	if _, err := NewRefine([]string{"a"}, ""); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest, got %v", err)
	}
}
