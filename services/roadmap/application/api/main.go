package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/services/roadmap/application/handlers"
	appsvcs "github.com/ghuser/eventplanner/services/roadmap/application/services"
)

// RoadmapRoutes registers the roadmap endpoints. Every route needs a session
// because the backend call carries the user's token.
func RoadmapRoutes(r chi.Router, a *app.Application, svcs *appsvcs.Services) {
	r.Group(func(r chi.Router) {
		if a.SessionStore != nil {
			r.Use(auth.RequireAuth(a.SessionStore, a.Logger))
		}
		r.Route("/events/{eventId}/roadmap", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/activity", handlers.NewListActivityHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteItemHandler(svcs).Execute)
			r.Patch("/{id}/status", handlers.NewPatchStatusHandler(svcs).Execute)
		})
	})
}
