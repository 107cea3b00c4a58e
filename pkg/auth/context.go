package auth

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const sessionKey contextKey = "session"

// ErrSessionNotFound is returned when no authenticated session exists in the
// request context. Handlers should return 401 when this error occurs.
var ErrSessionNotFound = errors.New("session not found in context")

// Profile is the marketplace user profile kept next to the token.
type Profile struct {
	ID    string `json:"id"    validate:"required,notblank"`
	Name  string `json:"name"  validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"omitempty,max=32"`
} // @name Profile

// Session is the authenticated state carried through a request: the opaque
// backend token plus the profile it belongs to.
type Session struct {
	Token string
	User  Profile
}

// WithSession returns a new context with s attached.
// Used by RequireAuth after loading the session from the store.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// SessionFromCtx extracts the authenticated session from the request context.
// A session without a token counts as missing.
func SessionFromCtx(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok || s.Token == "" {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

// TokenFromCtx returns the backend token for the current request, or "".
func TokenFromCtx(ctx context.Context) string {
	s, err := SessionFromCtx(ctx)
	if err != nil {
		return ""
	}
	return s.Token
}
