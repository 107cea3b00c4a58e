package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/eventplanner/pkg/logger"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewSessionStore(client, "planner:session",
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
		false,
	)
	return store, mr
}

func sessionRouter(store sessions.Store) http.Handler {
	h := NewSessionHandler(store, logger.Discard())
	r := chi.NewRouter()
	r.Post("/api/session", h.Create)
	r.Delete("/api/session", h.Delete)
	r.With(RequireAuth(store, logger.Discard())).Get("/api/session", h.Get)
	return r
}

func copyCookies(dst *http.Request, rr *httptest.ResponseRecorder) {
	for _, c := range rr.Result().Cookies() {
		dst.AddCookie(c)
	}
}

const loginBody = `{"token":"tok-abc","user":{"id":"u1","name":"Ana","email":"ana@example.com","role":"CLIENT"}}`

func TestRedisStore_LoginRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	router := sessionRouter(store)

	login := httptest.NewRecorder()
	router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(loginBody)))
	if login.Code != http.StatusCreated {
		t.Fatalf("login: expected 201, got %d: %s", login.Code, login.Body.String())
	}

	keys := mr.Keys()
	if len(keys) != 1 || !strings.HasPrefix(keys[0], "planner:session:") {
		t.Fatalf("expected one namespaced session key, got %v", keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 {
		t.Errorf("expected a TTL on the session key, got %v", ttl)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/session", http.NoBody)
	copyCookies(get, login)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, get)
	if me.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", me.Code)
	}
	if !strings.Contains(me.Body.String(), `"email":"ana@example.com"`) {
		t.Errorf("expected profile in body, got %s", me.Body.String())
	}
	if strings.Contains(me.Body.String(), "tok-abc") {
		t.Errorf("token must not be returned to the client: %s", me.Body.String())
	}
}

func TestRedisStore_LogoutDeletesKey(t *testing.T) {
	store, mr := newRedisStore(t)
	router := sessionRouter(store)

	login := httptest.NewRecorder()
	router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(loginBody)))

	del := httptest.NewRequest(http.MethodDelete, "/api/session", http.NoBody)
	copyCookies(del, login)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, del)
	if out.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", out.Code)
	}
	if keys := mr.Keys(); len(keys) != 0 {
		t.Fatalf("expected session key to be deleted, got %v", keys)
	}

	get := httptest.NewRequest(http.MethodGet, "/api/session", http.NoBody)
	copyCookies(get, login)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, get)
	if me.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: expected 401, got %d", me.Code)
	}
}

func TestRedisStore_ExpiredKeyYieldsNewSession(t *testing.T) {
	store, mr := newRedisStore(t)
	router := sessionRouter(store)

	login := httptest.NewRecorder()
	router.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(loginBody)))
	mr.FlushAll()

	r := httptest.NewRequest(http.MethodGet, "/api/session", http.NoBody)
	copyCookies(r, login)
	s, err := store.New(r, SessionName)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.IsNew || len(s.Values) != 0 {
		t.Fatalf("expected a fresh session, got IsNew=%v values=%v", s.IsNew, s.Values)
	}
}

func TestSessionHandler_CreateValidates(t *testing.T) {
	store, _ := newRedisStore(t)
	router := sessionRouter(store)

	tests := []struct {
		name string
		body string
	}{
		{"missing token", `{"user":{"id":"u1","name":"Ana","email":"ana@example.com"}}`},
		{"blank token", `{"token":"  ","user":{"id":"u1","name":"Ana","email":"ana@example.com"}}`},
		{"bad email", `{"token":"t","user":{"id":"u1","name":"Ana","email":"nope"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(tt.body)))
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestRedisStore_SaveFailsWhenRedisDown(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	r := httptest.NewRequest(http.MethodPost, "/api/session", http.NoBody)
	s, _ := store.New(r, SessionName)
	storeValues(s.Values, Session{Token: "t"})

	if err := store.Save(r.WithContext(context.Background()), httptest.NewRecorder(), s); err == nil {
		t.Fatal("expected error when redis is unreachable")
	}
}
