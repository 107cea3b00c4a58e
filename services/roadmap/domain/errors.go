package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors for the roadmap domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested roadmap item does not exist.
	ErrItemNotFound = errors.New("roadmap item not found")

	// ErrInvalidItem indicates the input violates item constraints. Wrapped
	// together with a FieldErrors value.
	ErrInvalidItem = errors.New("invalid roadmap item")

	// ErrInvalidStatus indicates a status outside PLANNING, SEARCHING,
	// CONTRACTED and COMPLETED.
	ErrInvalidStatus = errors.New("invalid roadmap status")

	// ErrBackendUnavailable covers transport failures, 5xx responses and
	// bodies that could not be decoded.
	ErrBackendUnavailable = errors.New("roadmap backend unavailable")

	// ErrBackendRejected indicates the backend refused the request
	// (400/409/422 or success=false).
	ErrBackendRejected = errors.New("roadmap backend rejected request")

	// ErrBackendUnauthorized indicates a 401/403 from the backend.
	ErrBackendUnauthorized = errors.New("roadmap backend unauthorized")
)

// FieldErrors maps a JSON field name to a human-readable message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Err returns nil when f is empty, otherwise ErrInvalidItem joined with f.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return errors.Join(ErrInvalidItem, f)
}
