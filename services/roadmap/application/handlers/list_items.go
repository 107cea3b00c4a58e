package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// ListItemsHandler handles GET /events/{eventId}/roadmap.
type ListItemsHandler struct {
	svc *appsvcs.Services
}

func NewListItemsHandler(svc *appsvcs.Services) *ListItemsHandler {
	return &ListItemsHandler{svc: svc}
}

// Execute returns the filtered roadmap with summary, completion and budget.
//
//	@Summary		Roadmap overview
//	@Description	Items filtered by status and category. Summary, completion and budget cover every item of the event.
//	@Tags			roadmap
//	@Produce		json
//	@Param			eventId		path		string	true	"Marketplace event ID"
//	@Param			status		query		string	false	"all, PLANNING, SEARCHING, CONTRACTED or COMPLETED"
//	@Param			category	query		string	false	"Category or all"
//	@Success		200			{object}	httpx.Envelope{data=models.Overview}
//	@Failure		401			{object}	httpx.Envelope
//	@Failure		422			{object}	httpx.Envelope
//	@Failure		502			{object}	httpx.Envelope
//	@Router			/events/{eventId}/roadmap [get]
func (h *ListItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}

	overview, err := h.svc.Roadmap.Overview(r.Context(), chi.URLParam(r, "eventId"), filter)
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", overview)
}
