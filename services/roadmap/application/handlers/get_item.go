package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// GetItemHandler handles GET /events/{eventId}/roadmap/{id}.
type GetItemHandler struct {
	svc *appsvcs.Services
}

func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns one roadmap item.
//
//	@Summary	Get roadmap item
//	@Tags		roadmap
//	@Produce	json
//	@Param		eventId	path		string	true	"Marketplace event ID"
//	@Param		id		path		string	true	"Item ID"
//	@Success	200		{object}	httpx.Envelope{data=models.RoadmapItem}
//	@Failure	401		{object}	httpx.Envelope
//	@Failure	404		{object}	httpx.Envelope
//	@Failure	502		{object}	httpx.Envelope
//	@Router		/events/{eventId}/roadmap/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Roadmap.Get(r.Context(), chi.URLParam(r, "eventId"), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", item)
}
