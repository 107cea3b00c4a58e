package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// Topics published after the backend confirms a roadmap mutation.
const (
	TopicItemCreated       = "roadmap.item.created"
	TopicItemUpdated       = "roadmap.item.updated"
	TopicItemStatusChanged = "roadmap.item.status_changed"
	TopicItemDeleted       = "roadmap.item.deleted"
)

// Topics lists every roadmap topic; the worker subscribes to all of them.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemStatusChanged, TopicItemDeleted}

// Kind is the short name stored in the activity log for each topic.
func Kind(topic string) string {
	switch topic {
	case TopicItemCreated:
		return "created"
	case TopicItemUpdated:
		return "updated"
	case TopicItemStatusChanged:
		return "status_changed"
	case TopicItemDeleted:
		return "deleted"
	}
	return ""
}

// CurrentVersion is the ItemEvent schema version; bump on breaking changes.
const CurrentVersion = 1

// ItemEvent is the payload of every roadmap topic.
// EventID is the publish-time identifier consumers deduplicate on; RoadmapEventID
// is the marketplace event the item belongs to.
type ItemEvent struct {
	EventID        uuid.UUID     `json:"event_id"`
	Version        int           `json:"version"`
	Kind           string        `json:"kind"`
	ItemID         string        `json:"item_id"`
	RoadmapEventID string        `json:"roadmap_event_id"`
	Title          string        `json:"title"`
	Category       string        `json:"category"`
	Status         models.Status `json:"status"`
	PreviousStatus models.Status `json:"previous_status,omitempty"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// NewItemEvent builds the event for topic from the confirmed item state.
func NewItemEvent(topic string, item models.RoadmapItem, now time.Time) ItemEvent {
	return ItemEvent{
		EventID:        uuid.New(),
		Version:        CurrentVersion,
		Kind:           Kind(topic),
		ItemID:         item.ID,
		RoadmapEventID: item.EventID,
		Title:          item.Title,
		Category:       item.Category,
		Status:         item.Status,
		OccurredAt:     now.UTC(),
	}
}
