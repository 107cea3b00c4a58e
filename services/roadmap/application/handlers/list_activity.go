package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// ListActivityHandler handles GET /events/{eventId}/roadmap/activity.
type ListActivityHandler struct {
	svc *appsvcs.Services
}

func NewListActivityHandler(svc *appsvcs.Services) *ListActivityHandler {
	return &ListActivityHandler{svc: svc}
}

// Execute pages the recorded roadmap changes of an event.
//
//	@Summary		Roadmap activity
//	@Description	Changes recorded by the worker from the roadmap topics, newest first.
//	@Tags			roadmap
//	@Produce		json
//	@Param			eventId	path		string	true	"Marketplace event ID"
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Param			offset	query		int		false	"Items to skip"
//	@Success		200		{object}	httpx.Envelope{data=ActivityPage}
//	@Failure		401		{object}	httpx.Envelope
//	@Router			/events/{eventId}/roadmap/activity [get]
func (h *ListActivityHandler) Execute(w http.ResponseWriter, r *http.Request) {
	opts := pageFromQuery(r)
	list, total, err := h.svc.Roadmap.Activity(r.Context(), chi.URLParam(r, "eventId"), opts)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", ActivityPage{Items: list, Total: total, Limit: opts.Limit, Offset: opts.Offset})
}
