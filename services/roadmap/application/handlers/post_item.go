package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/errhttp"
	"github.com/ghuser/eventplanner/pkg/httpx"
	pkgvalidator "github.com/ghuser/eventplanner/pkg/validator"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// PostItemHandler handles POST /events/{eventId}/roadmap.
type PostItemHandler struct {
	svc *appsvcs.Services
}

func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a roadmap item.
//
//	@Summary		Create roadmap item
//	@Description	Validates the item, creates it in the marketplace backend and announces it on the event bus. Status defaults to PLANNING.
//	@Tags			roadmap
//	@Accept			json
//	@Produce		json
//	@Param			eventId	path		string				true	"Marketplace event ID"
//	@Param			request	body		CreateItemRequest	true	"New item"
//	@Success		201		{object}	httpx.Envelope{data=models.RoadmapItem}
//	@Failure		400		{object}	httpx.Envelope
//	@Failure		401		{object}	httpx.Envelope
//	@Failure		422		{object}	httpx.Envelope
//	@Failure		502		{object}	httpx.Envelope
//	@Router			/events/{eventId}/roadmap [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Roadmap.Create(r.Context(), chi.URLParam(r, "eventId"), req.toNewItem())
	if err != nil {
		errhttp.WriteError(w, r, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "Roadmap item created", item)
}
