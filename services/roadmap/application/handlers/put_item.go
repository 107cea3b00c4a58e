package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	pkgvalidator "github.com/ghuser/eventplanner/pkg/validator"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// PutItemHandler handles PUT /events/{eventId}/roadmap/{id}.
type PutItemHandler struct {
	svc *appsvcs.Services
}

func NewPutItemHandler(svc *appsvcs.Services) *PutItemHandler {
	return &PutItemHandler{svc: svc}
}

// Execute applies a partial update.
//
//	@Summary		Update roadmap item
//	@Description	Only the fields present in the body are changed.
//	@Tags			roadmap
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		string				true	"Marketplace event ID"
//	@Param			id		path		string				true	"Item ID"
//	@Param			request	body		UpdateItemRequest	true	"Fields to change"
//	@Success		200		{object}	httpx.Envelope{data=models.RoadmapItem}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		404		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Failure		502		{object}	httpx.Envelope
//	@Router			/events/{eventId}/roadmap/{id} [put]
func (h *PutItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Roadmap.Update(r.Context(), chi.URLParam(r, "eventId"), chi.URLParam(r, "id"), req.toPatch())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Roadmap item updated", item)
}
