package backendapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", srv.Client(), StaticToken("tok-1"), logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("/api", nil, nil, logger.Discard()); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

func TestClient_ListDecodesNumericIDsAndPrices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/roadmaps/eventId/ev-1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"id":7,"idEvent":"ev-1","category":"Food","title":"Buffet","price":1500.5,"status":"PLANNING"},
			{"id":"8","eventId":"ev-1","category":"Music","title":"DJ","price":"R$ 800,00","status":"CONTRACTED"}
		]}`)
	})

	items, err := c.List(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "7" || items[0].EventID != "ev-1" || items[0].Price != "1500.5" {
		t.Errorf("first item decoded wrong: %+v", items[0])
	}
	if items[1].ID != "8" || items[1].Price != "R$ 800,00" || items[1].Status != models.StatusContracted {
		t.Errorf("second item decoded wrong: %+v", items[1])
	}
}

func TestClient_CreateSendsIDEvent(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/roadmaps/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"message":"created","data":{"id":"i1","idEvent":"ev-1","category":"Food","title":"Buffet","status":"PLANNING"}}`)
	})

	item, err := c.Create(context.Background(), models.NewItem{
		EventID: "ev-1", Category: "Food", Title: "Buffet", Status: models.StatusPlanning,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.ID != "i1" {
		t.Errorf("ID = %q", item.ID)
	}
	if body["idEvent"] != "ev-1" {
		t.Errorf("expected idEvent in body, got %v", body)
	}
}

func TestClient_UpdateSendsOnlySetFields(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/roadmaps/i1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":"i1","status":"SEARCHING"}}`)
	})

	if _, err := c.Update(context.Background(), "i1", models.ItemPatch{Status: models.StatusSearching.Ptr()}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(body) != 1 || body["status"] != "SEARCHING" {
		t.Errorf("expected only status in body, got %v", body)
	}
}

func TestClient_DeleteAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.Delete(context.Background(), "i1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not found", http.StatusNotFound, `{"success":false,"message":"no such item"}`, domain.ErrItemNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"success":false}`, domain.ErrBackendUnauthorized},
		{"forbidden", http.StatusForbidden, ``, domain.ErrBackendUnauthorized},
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"title required"}`, domain.ErrBackendRejected},
		{"conflict", http.StatusConflict, `{}`, domain.ErrBackendRejected},
		{"unprocessable", http.StatusUnprocessableEntity, `{}`, domain.ErrBackendRejected},
		{"success false on 200", http.StatusOK, `{"success":false,"message":"nope"}`, domain.ErrBackendRejected},
		{"server error", http.StatusBadGateway, `oops`, domain.ErrBackendUnavailable},
		{"malformed body", http.StatusOK, `<html>`, domain.ErrBackendUnavailable},
		{"missing data", http.StatusOK, `{"success":true}`, domain.ErrBackendUnavailable},
		{"bad id type", http.StatusOK, `{"success":true,"data":{"id":true}}`, domain.ErrBackendUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := c.Get(context.Background(), "i1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_TransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, nil, nil, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.List(context.Background(), "ev-1"); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if err := c.Ping(context.Background()); !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("ping: expected ErrBackendUnavailable, got %v", err)
	}
}

func TestClient_TokenFromContext(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	type key struct{}
	token := func(ctx context.Context) string {
		s, _ := ctx.Value(key{}).(string)
		return s
	}
	c, err := New(srv.URL, srv.Client(), token, logger.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := c.List(context.Background(), "ev-1"); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}

	if _, err := c.List(context.WithValue(context.Background(), key{}, "user-tok"), "ev-1"); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got != "Bearer user-tok" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestClient_PingTreats4xxAsReachable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
