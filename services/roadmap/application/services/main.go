package services

import (
	"fmt"

	"github.com/ghuser/eventplanner/pkg/app"
	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/backendapi"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/messaging"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the roadmap
// bounded context.
type Services struct {
	Roadmap *RoadmapService
	Backend *backendapi.Client
}

// New wires the roadmap services. The backend client forwards the bearer
// token of the request's session.
func New(a *app.Application) (*Services, error) {
	backend, err := backendapi.New(a.Config.BackendBaseURL, a.HTTPClient, auth.TokenFromCtx, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("roadmap backend: %w", err)
	}

	var activity repositories.ActivityRepository
	if a.Db != nil {
		activity = postgres.NewActivityRepository(a.Db)
	}
	var publisher repositories.ItemEventPublisher
	if a.EventBus != nil {
		publisher = messaging.NewPublisher(a.EventBus)
	}

	return &Services{
		Roadmap: NewRoadmapService(backend, activity, publisher, a.Logger),
		Backend: backend,
	}, nil
}
