package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// DeleteItemHandler handles DELETE /events/{eventId}/roadmap/{id}.
type DeleteItemHandler struct {
	svc *appsvcs.Services
}

func NewDeleteItemHandler(svc *appsvcs.Services) *DeleteItemHandler {
	return &DeleteItemHandler{svc: svc}
}

// Execute deletes a roadmap item.
//
//	@Summary	Delete roadmap item
//	@Tags		roadmap
//	@Produce	json
//	@Param		eventId	path		string	true	"Marketplace event ID"
//	@Param		id		path		string	true	"Item ID"
//	@Success	200		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Failure	502		{object}	httpx.Envelope
//	@Router		/events/{eventId}/roadmap/{id} [delete]
func (h *DeleteItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Roadmap.Delete(r.Context(), chi.URLParam(r, "eventId"), chi.URLParam(r, "id")); err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Roadmap item deleted", nil)
}
