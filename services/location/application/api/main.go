package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/services/location/application/handlers"
	appsvcs "github.com/ghuser/eventplanner/services/location/application/services"
)

// LocationRoutes registers the public location endpoints.
func LocationRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Get("/locations", handlers.NewSearchLocationsHandler(svcs).Execute)
}
