package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one recorded change to an event's roadmap.
type Activity struct {
	EventID        uuid.UUID `json:"eventId"`
	Kind           string    `json:"kind"`
	ItemID         string    `json:"itemId"`
	RoadmapEventID string    `json:"roadmapEventId"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Status         Status    `json:"status"`
	PreviousStatus Status    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
	RecordedAt     time.Time `json:"recordedAt"`
} // @name RoadmapActivity
