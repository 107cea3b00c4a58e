// Package messaging puts roadmap ItemEvents on the event bus.
package messaging

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/eventplanner/pkg/events"
	roadmapevents "github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

// Bus is the publishing half of *events.EventBus.
type Bus interface {
	Publish(ctx context.Context, topic string, msgs ...*message.Message) error
}

// Publisher implements repositories.ItemEventPublisher.
type Publisher struct {
	bus Bus
}

var _ repositories.ItemEventPublisher = (*Publisher)(nil)

func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) Publish(ctx context.Context, topic string, evt roadmapevents.ItemEvent) error {
	msg, err := events.NewJSONMessage(evt.EventID.String(), evt.Version, evt)
	if err != nil {
		return fmt.Errorf("roadmap event %s: %w", topic, err)
	}
	return p.bus.Publish(ctx, topic, msg)
}
