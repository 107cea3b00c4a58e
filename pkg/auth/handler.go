package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/eventplanner/pkg/httpx"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/pkg/validator"
)

// LoginRequest is what the front-end posts after authenticating against the
// marketplace backend.
type LoginRequest struct {
	Token string  `json:"token" validate:"required,notblank"`
	User  Profile `json:"user"  validate:"required"`
} // @name LoginRequest

// SessionHandler serves /api/session.
type SessionHandler struct {
	store sessions.Store
	log   logger.Logger
}

func NewSessionHandler(store sessions.Store, log logger.Logger) *SessionHandler {
	return &SessionHandler{store: store, log: log}
}

// Create godoc
//
//	@Summary	Store the backend token and profile in a server-side session
//	@Tags		session
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"token and profile"
//	@Success	201		{object}	httpx.Envelope{data=Profile}
//	@Failure	422		{object}	httpx.Envelope
//	@Router		/api/session [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := validator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}

	raw, err := h.store.Get(r, SessionName)
	if err != nil {
		// A stale cookie still yields a usable fresh session.
		h.log.WarnContext(r.Context(), "replacing unreadable session", "error", err)
	}
	if raw == nil {
		raw = sessions.NewSession(h.store, SessionName)
		raw.Options = &sessions.Options{Path: "/", MaxAge: 86400 * 7, HttpOnly: true, SameSite: http.SameSiteLaxMode}
	}
	storeValues(raw.Values, Session{Token: req.Token, User: req.User})
	if err := raw.Save(r, w); err != nil {
		h.log.ErrorContext(r.Context(), "save session", "error", err)
		httpx.JSONError(w, http.StatusInternalServerError, "could not save session")
		return
	}

	h.log.InfoContext(r.Context(), "session created", "user_id", req.User.ID)
	httpx.OK(w, http.StatusCreated, "Session created", req.User)
}

// Get godoc
//
//	@Summary	Current user profile
//	@Tags		session
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope{data=Profile}
//	@Failure	401	{object}	httpx.Envelope
//	@Router		/api/session [get]
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := SessionFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	httpx.OK(w, http.StatusOK, "", s.User)
}

// Delete godoc
//
//	@Summary	Log out
//	@Tags		session
//	@Success	204
//	@Router		/api/session [delete]
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.Get(r, SessionName)
	if err == nil {
		raw.Options.MaxAge = -1
		if err := raw.Save(r, w); err != nil {
			h.log.ErrorContext(r.Context(), "delete session", "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
