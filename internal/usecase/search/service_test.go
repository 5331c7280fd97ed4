package search

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/domain/events"
	"github.com/kailas-cloud/livesearch/internal/domain/search/filter"
	"github.com/kailas-cloud/livesearch/internal/domain/search/request"
)

// --- Mocks ---

type mockCatalog struct {
	data json.RawMessage
	err  error

	headers map[string]string
	vars    request.Variables
	refine  request.Refine
	calls   int
}

func (m *mockCatalog) ProductSearch(
	_ context.Context, headers map[string]string, vars request.Variables,
) (json.RawMessage, error) {
	m.calls++
	m.headers = headers
	m.vars = vars
	return m.data, m.err
}

func (m *mockCatalog) AttributeMetadata(_ context.Context, headers map[string]string) (json.RawMessage, error) {
	m.calls++
	m.headers = headers
	return m.data, m.err
}

func (m *mockCatalog) RefineProduct(
	_ context.Context, headers map[string]string, vars request.Refine,
) (json.RawMessage, error) {
	m.calls++
	m.headers = headers
	m.refine = vars
	return m.data, m.err
}

type recorder struct {
	calls   []string
	ids     []string
	input   events.SearchInput
	results json.RawMessage
}

func (r *recorder) RecordSearchInput(unitID, id string, in events.SearchInput) {
	r.calls = append(r.calls, "input")
	r.ids = append(r.ids, id)
	r.input = in
}

func (r *recorder) RecordSearchResults(unitID, id string, results json.RawMessage) {
	r.calls = append(r.calls, "results")
	r.ids = append(r.ids, id)
	r.results = results
}

func (r *recorder) SearchRequestSent(string)      { r.calls = append(r.calls, "sent") }
func (r *recorder) SearchResponseReceived(string) { r.calls = append(r.calls, "received") }
func (r *recorder) CategoryResultsView(string)    { r.calls = append(r.calls, "categoryView") }
func (r *recorder) SearchResultsView(string)      { r.calls = append(r.calls, "searchView") }

func identity() domain.Identity {
	return domain.Identity{
		EnvironmentID: "env-1",
		WebsiteCode:   "base",
		StoreCode:     "main_website_store",
		StoreViewCode: "default",
		APIKey:        "key",
	}
}

func newRequest(t *testing.T, p request.Params) *request.Request {
	t.Helper()
	r, err := request.New(p)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

// --- Tests ---

func TestProductSearch_ComposesFilters(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{"productSearch":{"total_count":0}}`)}
	svc := New(cat, nil)

	brand, err := filter.NewEq("brand", "acme")
	if err != nil {
		t.Fatal(err)
	}
	req := newRequest(t, request.Params{
		Phrase: "mug",
		Filter: []filter.Clause{brand},
	})

	if _, err := svc.ProductSearch(context.Background(), identity(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := cat.vars.Filter
	if len(got) != 3 {
		t.Fatalf("filters = %d, want 3", len(got))
	}
	if got[0].Attribute() != "brand" || got[1].Attribute() != filter.AttributeVisibility ||
		got[2].Attribute() != filter.AttributeInStock {
		t.Errorf("filter order = %v", got)
	}
	if !reflect.DeepEqual(got[1].In(), []string{"Search", "Catalog, Search"}) {
		t.Errorf("visibility = %v", got[1].In())
	}
	if len(req.Filter()) != 1 {
		t.Errorf("caller filters mutated: %v", req.Filter())
	}
}

func TestProductSearch_ShowOutOfStock(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{}`)}
	svc := New(cat, nil)

	req := newRequest(t, request.Params{CategorySearch: true, DisplayOutOfStock: "1"})
	if _, err := svc.ProductSearch(context.Background(), identity(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cat.vars.Filter) != 1 {
		t.Fatalf("filters = %v, want visibility only", cat.vars.Filter)
	}
	if !reflect.DeepEqual(cat.vars.Filter[0].In(), []string{"Catalog", "Catalog, Search"}) {
		t.Errorf("visibility = %v", cat.vars.Filter[0].In())
	}
}

func TestProductSearch_Headers(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{}`)}
	svc := New(cat, nil)

	req := newRequest(t, request.Params{Context: &domain.QueryContext{CustomerGroup: "b2b"}})
	if _, err := svc.ProductSearch(context.Background(), identity(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, h := range []string{
		domain.HeaderEnvironmentID, domain.HeaderWebsiteCode, domain.HeaderStoreCode,
		domain.HeaderStoreViewCode, domain.HeaderAPIKey, domain.HeaderRequestID,
		domain.HeaderContentType, domain.HeaderCustomerGroup,
	} {
		if _, ok := cat.headers[h]; !ok {
			t.Errorf("missing header %s", h)
		}
	}
	if cat.headers[domain.HeaderCustomerGroup] != "b2b" {
		t.Errorf("customer group = %q", cat.headers[domain.HeaderCustomerGroup])
	}
	if cat.headers[domain.HeaderRequestID] == "" {
		t.Error("request id must be minted")
	}
}

func TestProductSearch_EventOrder(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{"productSearch":{"total_count":5}}`)}
	rec := &recorder{}
	svc := New(cat, rec)
	svc.newID = func() string { return "search-req-1" }

	req := newRequest(t, request.Params{Phrase: "mug", PageSize: 12})
	if _, err := svc.ProductSearch(context.Background(), identity(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"input", "sent", "results", "received", "searchView"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if !reflect.DeepEqual(rec.ids, []string{"search-req-1", "search-req-1"}) {
		t.Errorf("search request ids = %v", rec.ids)
	}
	if rec.input.Phrase != "mug" || rec.input.PageSize != 12 || rec.input.CurrentPage != 1 {
		t.Errorf("input = %+v", rec.input)
	}
	if string(rec.results) != `{"total_count":5}` {
		t.Errorf("results = %s", rec.results)
	}
}

func TestProductSearch_CategoryView(t *testing.T) {
	rec := &recorder{}
	svc := New(&mockCatalog{data: json.RawMessage(`{}`)}, rec)

	req := newRequest(t, request.Params{CategorySearch: true})
	if _, err := svc.ProductSearch(context.Background(), identity(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.calls[len(rec.calls)-1] != "categoryView" {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestProductSearch_FreshSearchRequestIDs(t *testing.T) {
	rec := &recorder{}
	svc := New(&mockCatalog{data: json.RawMessage(`{}`)}, rec)
	req := newRequest(t, request.Params{})

	_, _ = svc.ProductSearch(context.Background(), identity(), req)
	_, _ = svc.ProductSearch(context.Background(), identity(), req)

	if rec.ids[0] == rec.ids[2] {
		t.Errorf("search request id reused: %v", rec.ids)
	}
}

func TestProductSearch_TransportError(t *testing.T) {
	upstream := domain.NewTransportError("productSearch", 503, nil)
	rec := &recorder{}
	svc := New(&mockCatalog{err: upstream}, rec)

	_, err := svc.ProductSearch(context.Background(), identity(), newRequest(t, request.Params{}))
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if !reflect.DeepEqual(rec.calls, []string{"input", "sent"}) {
		t.Errorf("calls = %v", rec.calls)
	}
}

func TestProductSearch_PassesDataThrough(t *testing.T) {
	data := json.RawMessage(`{"productSearch":{"items":[{"product":{"sku":"A"}}]}}`)
	svc := New(&mockCatalog{data: data}, nil)

	res, err := svc.ProductSearch(context.Background(), identity(), newRequest(t, request.Params{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(res.Data()) != string(data) {
		t.Errorf("data = %s", res.Data())
	}
}

func TestAttributeMetadata_EmptyCustomerGroup(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{"attributeMetadata":{}}`)}
	svc := New(cat, nil)

	res, err := svc.AttributeMetadata(context.Background(), identity())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := cat.headers[domain.HeaderCustomerGroup]; !ok || v != "" {
		t.Errorf("customer group header = %q (present=%v)", v, ok)
	}
	if res.Field("attributeMetadata") == nil {
		t.Error("expected attributeMetadata field")
	}
}

func TestAttributeMetadata_Error(t *testing.T) {
	svc := New(&mockCatalog{err: domain.MalformedResponse("attributeMetadata", errors.New("eof"))}, nil)
	if _, err := svc.AttributeMetadata(context.Background(), identity()); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRefineProduct(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{"refineProduct":{"sku":"MUG-1-RED"}}`)}
	svc := New(cat, nil)

	ref, _ := request.NewRefine([]string{"red"}, "MUG-1")
	res, err := svc.RefineProduct(context.Background(), identity(), &domain.QueryContext{CustomerGroup: "retail"}, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.headers[domain.HeaderCustomerGroup] != "retail" {
		t.Errorf("customer group = %q", cat.headers[domain.HeaderCustomerGroup])
	}
	if cat.refine.SKU != "MUG-1" {
		t.Errorf("refine = %+v", cat.refine)
	}
	if res.IsEmpty() {
		t.Error("expected data")
	}
}

func TestRefineProduct_NilContext(t *testing.T) {
	cat := &mockCatalog{data: json.RawMessage(`{}`)}
	ref, _ := request.NewRefine(nil, "MUG-1")

	if _, err := New(cat, nil).RefineProduct(context.Background(), identity(), nil, ref); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.headers[domain.HeaderCustomerGroup] != "" {
		t.Errorf("customer group = %q", cat.headers[domain.HeaderCustomerGroup])
	}
}
