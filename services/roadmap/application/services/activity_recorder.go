package services

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	pkgevents "github.com/ghuser/eventplanner/pkg/events"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

// ActivityRecorder consumes roadmap events and writes them to the activity
// log. Handling the same message twice records it once.
type ActivityRecorder struct {
	repo repositories.ActivityRepository
	log  logger.Logger
}

func NewActivityRecorder(repo repositories.ActivityRepository, log logger.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, log: log}
}

// Handle is an events.Handler. Undecodable or future-version payloads are
// logged and acknowledged; only storage failures are returned for retry.
func (r *ActivityRecorder) Handle(ctx context.Context, msg *message.Message) error {
	evt, err := pkgevents.DecodeJSON[events.ItemEvent](msg)
	if err != nil {
		r.log.ErrorContext(ctx, "dropping undecodable roadmap event", "message_uuid", msg.UUID, "error", err)
		return nil
	}
	if evt.Version > events.CurrentVersion {
		r.log.WarnContext(ctx, "dropping roadmap event with unknown version",
			"event_id", evt.EventID, "version", evt.Version)
		return nil
	}

	recorded, err := r.repo.Record(ctx, evt)
	if err != nil {
		return fmt.Errorf("record activity %s: %w", evt.EventID, err)
	}
	if !recorded {
		r.log.DebugContext(ctx, "roadmap event already recorded", "event_id", evt.EventID)
		return nil
	}
	r.log.InfoContext(ctx, "roadmap activity recorded",
		"event_id", evt.EventID,
		"kind", evt.Kind,
		"item_id", evt.ItemID,
		"roadmap_event_id", evt.RoadmapEventID,
	)
	return nil
}
