package static

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/kailas-cloud/livesearch/internal/domain"
	"github.com/kailas-cloud/livesearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

func TestFetcher_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/media/promo.json" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	f := NewFetcher(nil, srv.URL+"/")
	body, err := f.Get(context.Background(), "promoTiles", "/media/promo.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != `{"data":[]}` {
		t.Errorf("body = %s", body)
	}
}

func TestFetcher_AbsoluteURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	f := NewFetcher(nil, "https://ignored.example")
	if _, err := f.Get(context.Background(), "promoTiles", srv.URL+"/x.json"); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(nil, "").Get(context.Background(), "promoTiles", srv.URL+"/missing.json")
	var te *domain.TransportError
	if !errors.As(err, &te) || te.Status != http.StatusNotFound {
		t.Fatalf("expected 404 transport error, got %v", err)
	}
}

func TestFetcher_Resolve(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"", "/a.json", "/a.json"},
		{"https://s.example", "a.json", "https://s.example/a.json"},
		{"https://s.example/", "/a.json", "https://s.example/a.json"},
		{"https://s.example", "http://o.example/a.json", "http://o.example/a.json"},
	}
	for _, tc := range tests {
		if got := NewFetcher(nil, tc.base).resolve(tc.path); got != tc.want {
			t.Errorf("resolve(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}
