package repositories

import (
	"context"

	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// RoadmapBackend is the marketplace REST boundary for roadmap items. The
// domain layer owns this interface; infrastructure implements it.
//
// Implementations map failures onto the domain sentinels: ErrItemNotFound,
// ErrBackendRejected, ErrBackendUnauthorized and ErrBackendUnavailable.
type RoadmapBackend interface {
	List(ctx context.Context, eventID string) ([]models.RoadmapItem, error)
	Get(ctx context.Context, id string) (models.RoadmapItem, error)
	Create(ctx context.Context, in models.NewItem) (models.RoadmapItem, error)
	Update(ctx context.Context, id string, patch models.ItemPatch) (models.RoadmapItem, error)
	Delete(ctx context.Context, id string) error
}

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ActivityRepository persists the roadmap activity log.
type ActivityRepository interface {
	// Record stores evt. Recording an EventID twice is a no-op and reports
	// recorded=false.
	Record(ctx context.Context, evt events.ItemEvent) (recorded bool, err error)

	// ListByEvent returns a page of activity for a marketplace event, newest
	// first, plus the total count ignoring pagination.
	ListByEvent(ctx context.Context, roadmapEventID string, opts QueryOpts) ([]models.Activity, int, error)
}

// ItemEventPublisher delivers roadmap events to the event bus.
type ItemEventPublisher interface {
	Publish(ctx context.Context, topic string, evt events.ItemEvent) error
}
