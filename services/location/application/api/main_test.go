package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/pkg/config"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/location/application/api"
	appsvcs "github.com/ghuser/eventplanner/services/location/application/services"
	"github.com/ghuser/eventplanner/services/location/domain/models"
)

type envelope struct {
	Success bool                    `json:"success"`
	Data    []models.LocationResult `json:"data"`
}

func geocoder(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(nominatimURL, ibgeURL string) http.Handler {
	a := &app.Application{
		Config: &config.Config{
			NominatimURL:           nominatimURL,
			NominatimUserAgent:     "planner-test",
			IBGEMunicipalitiesURL:  ibgeURL,
			GeocoderCountry:        "Brasil",
			LocationMinQueryLength: 3,
			LocationMaxResults:     8,
		},
		Logger:     logger.Discard(),
		HTTPClient: http.DefaultClient,
	}
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.LocationRoutes(r, appsvcs.New(a))
	})
	return r
}

func search(t *testing.T, h http.Handler, q string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/locations?q="+q, http.NoBody))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return env
}

const ibgeBody = `[{"nome":"Recife","microrregiao":{"mesorregiao":{"UF":{"sigla":"PE"}}}}]`

func TestLocationRoutes_PrimaryResults(t *testing.T) {
	primary := geocoder(t, `[{"display_name":"Boa Viagem, Recife, Pernambuco, Brasil","address":{"suburb":"Boa Viagem","city":"Recife","state":"Pernambuco"}}]`, http.StatusOK)
	secondary := geocoder(t, ibgeBody, http.StatusOK)

	env := search(t, newRouter(primary.URL, secondary.URL), "boa+viagem")
	if !env.Success || len(env.Data) != 1 {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if got := env.Data[0]; got.Kind != models.KindNeighborhood || got.FullName != "Boa Viagem, Recife, Pernambuco" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestLocationRoutes_FallbackAndFailures(t *testing.T) {
	tests := []struct {
		name      string
		primary   func(t *testing.T) *httptest.Server
		secondary func(t *testing.T) *httptest.Server
		q         string
		want      []string
	}{
		{
			name:      "primary down uses directory",
			primary:   func(t *testing.T) *httptest.Server { return geocoder(t, "", http.StatusServiceUnavailable) },
			secondary: func(t *testing.T) *httptest.Server { return geocoder(t, ibgeBody, http.StatusOK) },
			q:         "recife",
			want:      []string{"Recife, PE"},
		},
		{
			name:      "both down",
			primary:   func(t *testing.T) *httptest.Server { return geocoder(t, "", http.StatusBadGateway) },
			secondary: func(t *testing.T) *httptest.Server { return geocoder(t, "not json", http.StatusOK) },
			q:         "recife",
			want:      []string{},
		},
		{
			name:      "short query",
			primary:   func(t *testing.T) *httptest.Server { return geocoder(t, `[]`, http.StatusOK) },
			secondary: func(t *testing.T) *httptest.Server { return geocoder(t, ibgeBody, http.StatusOK) },
			q:         "re",
			want:      []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := search(t, newRouter(tt.primary(t).URL, tt.secondary(t).URL), tt.q)
			if env.Data == nil {
				t.Fatal("expected a JSON array, got null")
			}
			if len(env.Data) != len(tt.want) {
				t.Fatalf("got %+v, want %v", env.Data, tt.want)
			}
			for i, w := range tt.want {
				if env.Data[i].FullName != w {
					t.Errorf("result %d = %q, want %q", i, env.Data[i].FullName, w)
				}
			}
		})
	}
}
