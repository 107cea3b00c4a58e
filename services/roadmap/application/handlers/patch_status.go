package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	pkgvalidator "github.com/ghuser/eventplanner/pkg/validator"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// PatchStatusHandler handles PATCH /events/{eventId}/roadmap/{id}/status.
type PatchStatusHandler struct {
	svc *appsvcs.Services
}

func NewPatchStatusHandler(svc *appsvcs.Services) *PatchStatusHandler {
	return &PatchStatusHandler{svc: svc}
}

// Execute moves an item to another status. Any status may follow any other.
//
//	@Summary	Change roadmap item status
//	@Tags		roadmap
//	@Accept		json
//	@Produce	json
//	@Param		eventId	path		string				true	"Marketplace event ID"
//	@Param		id		path		string				true	"Item ID"
//	@Param		request	body		ChangeStatusRequest	true	"New status"
//	@Success	200		{object}	httpx.Envelope{data=models.RoadmapItem}
//	@Failure	404		{object}	httpx.Envelope
//	@Failure	422		{object}	httpx.Envelope
//	@Failure	502		{object}	httpx.Envelope
//	@Router		/events/{eventId}/roadmap/{id}/status [patch]
func (h *PatchStatusHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ChangeStatusRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Roadmap.ChangeStatus(r.Context(), chi.URLParam(r, "eventId"), chi.URLParam(r, "id"), models.Status(req.Status))
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Status updated", item)
}
