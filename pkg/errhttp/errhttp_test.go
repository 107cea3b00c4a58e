package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/eventplanner/pkg/httpx"
	roadmapdomain "github.com/ghuser/eventplanner/services/roadmap/domain"
)

func write(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), err)
	return w
}

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", roadmapdomain.ErrItemNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get item: %w", roadmapdomain.ErrItemNotFound), http.StatusNotFound},
		{"invalid status", roadmapdomain.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"field errors", roadmapdomain.FieldErrors{"title": "required"}.Err(), http.StatusUnprocessableEntity},
		{"rejected", fmt.Errorf("%w: duplicate", roadmapdomain.ErrBackendRejected), http.StatusBadRequest},
		{"unauthorized", roadmapdomain.ErrBackendUnauthorized, http.StatusUnauthorized},
		{"unavailable", fmt.Errorf("%w: dial tcp", roadmapdomain.ErrBackendUnavailable), http.StatusBadGateway},
		{"unknown", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := write(tt.err); w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_FieldErrorsBody(t *testing.T) {
	w := write(roadmapdomain.FieldErrors{"title": "This field is required", "price": "Must be a valid amount"}.Err())

	var body httpx.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Error("expected success=false")
	}
	if body.Fields["title"] != "This field is required" || body.Fields["price"] == "" {
		t.Errorf("unexpected fields %v", body.Fields)
	}
}

func TestWriteError_HidesInternalDetail(t *testing.T) {
	w := write(fmt.Errorf("%w: dial tcp 10.0.0.5:3000: connection refused", roadmapdomain.ErrBackendUnavailable))
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("internal address leaked: %s", w.Body.String())
	}

	w = write(errors.New("pq: relation missing"))
	if strings.Contains(w.Body.String(), "relation") {
		t.Errorf("internal error leaked: %s", w.Body.String())
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := write(roadmapdomain.ErrItemNotFound)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("expected application/json, got %q", ct)
	}
}
