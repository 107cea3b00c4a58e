package nominatim

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ghuser/eventplanner/services/location/domain/models"
)

func TestClient_SearchBuildsQueryAndClassifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "savassi, Brasil" || q.Get("format") != "json" || q.Get("addressdetails") != "1" || q.Get("limit") != "8" {
			t.Errorf("unexpected query %v", q)
		}
		if ua := r.Header.Get("User-Agent"); ua != "planner-test/1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		_, _ = io.WriteString(w, `[
			{"display_name":"Savassi, Belo Horizonte, Minas Gerais, Brasil","address":{"suburb":"Savassi","city":"Belo Horizonte","state":"Minas Gerais"}},
			{"display_name":"Rua Savassi, Contagem, Brasil","address":{"road":"Rua Savassi","city":"Contagem"}}
		]`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/", UserAgent: "planner-test/1.0", Country: "Brasil"}, srv.Client())
	got, err := c.Search(context.Background(), "savassi", 8)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Kind != models.KindNeighborhood || got[0].FullName != "Savassi, Belo Horizonte, Minas Gerais" {
		t.Errorf("first result %+v", got[0])
	}
	if got[1].Kind != models.KindAddress || got[1].FullName != "Rua Savassi, Contagem" {
		t.Errorf("second result %+v", got[1])
	}
}

func TestClient_SearchFailures(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) }},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTooManyRequests) }},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, `{"not":"an array"`) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.h)
			defer srv.Close()

			c := New(Config{BaseURL: srv.URL, UserAgent: "t"}, srv.Client())
			if _, err := c.Search(context.Background(), "recife", 8); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, UserAgent: "t", RatePerSec: 0.01}, srv.Client())
	if _, err := c.Search(context.Background(), "recife", 8); err != nil {
		t.Fatalf("first search: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Search(ctx, "recife", 8); err == nil {
		t.Fatal("expected the second search to be refused by the limiter")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected 1 upstream call, got %d", n)
	}
}
