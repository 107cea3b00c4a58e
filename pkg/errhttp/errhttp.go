// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/eventplanner/pkg/httpx"
	"github.com/ghuser/eventplanner/pkg/telemetry"
	roadmapdomain "github.com/ghuser/eventplanner/services/roadmap/domain"
)

// WriteError maps err to a status code and writes a failed envelope.
// Validation failures carry per-field messages. Server-side failures get a
// generic message and are reported to Sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToStatus(err)

	var fields roadmapdomain.FieldErrors
	if status == http.StatusUnprocessableEntity && errors.As(err, &fields) {
		httpx.FieldErrors(w, "Validation failed", fields)
		return
	}

	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
		httpx.JSONError(w, status, publicMessage(err, status))
		return
	}
	httpx.JSONError(w, status, err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, roadmapdomain.ErrItemNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, roadmapdomain.ErrInvalidItem),
		errors.Is(err, roadmapdomain.ErrInvalidStatus):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, roadmapdomain.ErrBackendRejected):
		return http.StatusBadRequest // 400
	case errors.Is(err, roadmapdomain.ErrBackendUnauthorized):
		return http.StatusUnauthorized // 401
	case errors.Is(err, roadmapdomain.ErrBackendUnavailable):
		return http.StatusBadGateway // 502
	default:
		return http.StatusInternalServerError // 500
	}
}

func publicMessage(err error, status int) string {
	if errors.Is(err, roadmapdomain.ErrBackendUnavailable) {
		return roadmapdomain.ErrBackendUnavailable.Error()
	}
	return http.StatusText(status)
}
