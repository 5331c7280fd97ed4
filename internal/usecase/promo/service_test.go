package promo

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/livesearch/internal/domain"
)

// --- Mocks ---

type mockSource struct {
	body     []byte
	err      error
	lastPath string
	calls    int
}

func (m *mockSource) Get(_ context.Context, _, path string) ([]byte, error) {
	m.calls++
	m.lastPath = path
	return m.body, m.err
}

// cachingSource is a mockSource that can evict documents.
type cachingSource struct {
	mockSource
	evicted []string
	evictErr error
}

func (c *cachingSource) Invalidate(_ context.Context, path string) error {
	c.evicted = append(c.evicted, path)
	return c.evictErr
}

// --- Tests ---

const tilesDoc = `{"data":[
  {"path":"/coffee/","destination":"/sale","image":"/a.png","position":"2"},
  {"path":"/tea","destination":"/sale","image":"/b.png","position":"3"},
  {"path":"/coffee/capsules","destination":"","image":"/c.png","position":"4"}
]}`

func TestCategoryTiles_Filters(t *testing.T) {
	src := &mockSource{body: []byte(tilesDoc)}
	svc := New(src, "/media/promo.json")

	tiles := svc.CategoryTiles(context.Background(), "coffee/capsules")
	if len(tiles) != 1 || tiles[0].Position != "2" {
		t.Errorf("tiles = %+v", tiles)
	}
	if src.lastPath != "/media/promo.json" {
		t.Errorf("path = %q", src.lastPath)
	}
}

func TestCategoryTiles_SourceError(t *testing.T) {
	svc := New(&mockSource{err: errors.New("404")}, "/media/promo.json")

	tiles := svc.CategoryTiles(context.Background(), "/coffee")
	if tiles == nil || len(tiles) != 0 {
		t.Errorf("tiles = %v, want empty", tiles)
	}
}

func TestCategoryTiles_Malformed(t *testing.T) {
	for _, body := range []string{`<html>`, `{"data":"x"}`, ``} {
		svc := New(&mockSource{body: []byte(body)}, "/media/promo.json")
		tiles := svc.CategoryTiles(context.Background(), "/coffee")
		if tiles == nil || len(tiles) != 0 {
			t.Errorf("body %q: tiles = %v, want empty", body, tiles)
		}
	}
}

func TestCategoryTiles_NullData(t *testing.T) {
	svc := New(&mockSource{body: []byte(`{"data":null}`)}, "/media/promo.json")
	tiles := svc.CategoryTiles(context.Background(), "/coffee")
	if tiles == nil || len(tiles) != 0 {
		t.Errorf("tiles = %v, want empty", tiles)
	}
}

func TestCategoryTiles_NoDataPath(t *testing.T) {
	src := &mockSource{body: []byte(tilesDoc)}
	tiles := New(src, "").CategoryTiles(context.Background(), "/coffee")
	if len(tiles) != 0 {
		t.Errorf("tiles = %v, want empty", tiles)
	}
	if src.calls != 0 {
		t.Error("source must not be called without a data path")
	}
}

func TestCategoryTiles_SkipsTileOfWrongShape(t *testing.T) {
	body := `{"data":[
  {"path":"/coffee","destination":"/sale","image":"/a.png","position":"2"},
  {"path":"/coffee","destination":"/sale","image":"/b.png","position":5}
]}`
	tiles := New(&mockSource{body: []byte(body)}, "/media/promo.json").CategoryTiles(context.Background(), "/coffee")
	if len(tiles) != 1 || tiles[0].Image != "/a.png" {
		t.Errorf("tiles = %+v, want only the string-positioned tile", tiles)
	}
}

func TestLookup_ReportsWhyEmpty(t *testing.T) {
	tests := []struct {
		name string
		svc  *Service
		want error
	}{
		{"no data path", New(&mockSource{}, ""), domain.ErrConfigurationMissing},
		{"malformed", New(&mockSource{body: []byte(`{"data":{}}`)}, "/p.json"), domain.ErrMalformedResponse},
		{"source", New(&mockSource{err: domain.NewTransportError(OpPromoTiles, 404, nil)}, "/p.json"), domain.ErrTransport},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tiles, err := tc.svc.Lookup(context.Background(), "/coffee")
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
			if tiles == nil || len(tiles) != 0 {
				t.Errorf("tiles = %v, want empty", tiles)
			}
		})
	}
}

func TestLookup_EvictsUndecodableDocument(t *testing.T) {
	src := &cachingSource{mockSource: mockSource{body: []byte(`{"data":"x"}`)}}
	svc := New(src, "/media/promo.json")

	if _, err := svc.Lookup(context.Background(), "/coffee"); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("err = %v", err)
	}
	if len(src.evicted) != 1 || src.evicted[0] != "/media/promo.json" {
		t.Errorf("evicted = %v", src.evicted)
	}
}

func TestLookup_KeepsGoodDocumentCached(t *testing.T) {
	src := &cachingSource{mockSource: mockSource{body: []byte(tilesDoc)}}
	if _, err := New(src, "/media/promo.json").Lookup(context.Background(), "/coffee"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(src.evicted) != 0 {
		t.Errorf("evicted = %v", src.evicted)
	}
}

func TestLookup_EvictionFailureStillEmpty(t *testing.T) {
	src := &cachingSource{mockSource: mockSource{body: []byte(`[]`)}, evictErr: errors.New("conn reset")}
	tiles := New(src, "/media/promo.json").CategoryTiles(context.Background(), "/coffee")
	if tiles == nil || len(tiles) != 0 {
		t.Errorf("tiles = %v", tiles)
	}
}
