package handlers

import (
	"net/http"

	"github.com/ghuser/eventplanner/pkg/httpx"
	appsvcs "github.com/ghuser/eventplanner/services/location/application/services"
)

// SearchLocationsHandler handles GET /locations.
type SearchLocationsHandler struct {
	svc *appsvcs.Services
}

func NewSearchLocationsHandler(svc *appsvcs.Services) *SearchLocationsHandler {
	return &SearchLocationsHandler{svc: svc}
}

// Execute returns place suggestions for a free-text query.
//
//	@Summary		Location suggestions
//	@Description	Addresses, neighborhoods and cities matching q. Short queries and geocoder failures yield an empty list.
//	@Tags			locations
//	@Produce		json
//	@Param			q	query		string	true	"Free-text place query"
//	@Success		200	{object}	httpx.Envelope{data=[]models.LocationResult}
//	@Router			/locations [get]
func (h *SearchLocationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	results := h.svc.Resolver.Search(r.Context(), r.URL.Query().Get("q"))
	httpx.OK(w, http.StatusOK, "", results)
}
