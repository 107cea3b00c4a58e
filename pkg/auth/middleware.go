package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/eventplanner/pkg/httpx"
	"github.com/ghuser/eventplanner/pkg/logger"
)

// SessionName is the cookie carrying the encrypted session ID.
const SessionName = "planner_session"

const (
	valToken     = "token"
	valUserID    = "user_id"
	valUserName  = "user_name"
	valUserEmail = "user_email"
	valUserRole  = "user_role"
)

// RequireAuth is a chi middleware that enforces authentication via session cookies.
// It loads the session, rebuilds the Session value and injects it into the
// request context. Returns 401 if the session is missing, invalid, or has no token.
//
// After this middleware, handlers can safely call auth.SessionFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(r.Context(), "invalid session cookie", "error", err)
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			s, ok := sessionFromValues(raw.Values)
			if !ok {
				log.WarnContext(r.Context(), "session missing token")
				httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func sessionFromValues(values map[any]any) (Session, bool) {
	str := func(k string) string {
		v, _ := values[k].(string)
		return v
	}
	s := Session{
		Token: str(valToken),
		User: Profile{
			ID:    str(valUserID),
			Name:  str(valUserName),
			Email: str(valUserEmail),
			Role:  str(valUserRole),
		},
	}
	return s, s.Token != ""
}

func storeValues(values map[any]any, s Session) {
	values[valToken] = s.Token
	values[valUserID] = s.User.ID
	values[valUserName] = s.User.Name
	values[valUserEmail] = s.User.Email
	values[valUserRole] = s.User.Role
}
