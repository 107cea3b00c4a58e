package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
	domainsvcs "github.com/ghuser/eventplanner/services/roadmap/domain/services"
)

// RoadmapService serves the HTTP handlers. It keeps no item state: every
// call goes to the backend, and every confirmed mutation is announced on the
// event bus. A failed publish is logged and never fails the request.
type RoadmapService struct {
	backend   repositories.RoadmapBackend
	activity  repositories.ActivityRepository
	publisher repositories.ItemEventPublisher
	log       logger.Logger
	now       func() time.Time
}

// NewRoadmapService wires the service. activity and publisher may be nil.
func NewRoadmapService(
	backend repositories.RoadmapBackend,
	activity repositories.ActivityRepository,
	publisher repositories.ItemEventPublisher,
	log logger.Logger,
) *RoadmapService {
	return &RoadmapService{
		backend:   backend,
		activity:  activity,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Overview lists the event's items and builds the filtered page model.
func (s *RoadmapService) Overview(ctx context.Context, eventID string, f models.Filter) (models.Overview, error) {
	items, err := s.backend.List(ctx, eventID)
	if err != nil {
		return models.Overview{}, fmt.Errorf("list roadmap: %w", err)
	}
	return domainsvcs.BuildOverview(items, f), nil
}

// Get returns one item, scoped to eventID.
func (s *RoadmapService) Get(ctx context.Context, eventID, id string) (models.RoadmapItem, error) {
	item, err := s.backend.Get(ctx, id)
	if err != nil {
		return models.RoadmapItem{}, fmt.Errorf("get item: %w", err)
	}
	if item.EventID != "" && item.EventID != eventID {
		return models.RoadmapItem{}, fmt.Errorf("get item %s: %w", id, domain.ErrItemNotFound)
	}
	return item, nil
}

// Create validates in and creates it under eventID.
func (s *RoadmapService) Create(ctx context.Context, eventID string, in models.NewItem) (models.RoadmapItem, error) {
	in.EventID = eventID
	if in.Status == "" {
		in.Status = models.StatusPlanning
	}
	if err := domainsvcs.ValidateNewItem(in); err != nil {
		return models.RoadmapItem{}, err
	}

	item, err := s.backend.Create(ctx, in)
	if err != nil {
		return models.RoadmapItem{}, fmt.Errorf("create item: %w", err)
	}
	if item.EventID == "" {
		item.EventID = eventID
	}

	s.publish(ctx, events.TopicItemCreated, item, "")
	s.log.InfoContext(ctx, "roadmap item created", "item_id", item.ID, "roadmap_event_id", eventID)
	return item, nil
}

// Update applies a partial update. A status change is announced on the
// status_changed topic, anything else on updated.
func (s *RoadmapService) Update(ctx context.Context, eventID, id string, p models.ItemPatch) (models.RoadmapItem, error) {
	if err := domainsvcs.ValidatePatch(p); err != nil {
		return models.RoadmapItem{}, err
	}

	before, err := s.Get(ctx, eventID, id)
	if err != nil {
		return models.RoadmapItem{}, err
	}

	item, err := s.backend.Update(ctx, id, p)
	if err != nil {
		return models.RoadmapItem{}, fmt.Errorf("update item: %w", err)
	}
	if item.EventID == "" {
		item.EventID = eventID
	}

	topic := events.TopicItemUpdated
	var previous models.Status
	if item.Status != before.Status {
		topic = events.TopicItemStatusChanged
		previous = before.Status
	}
	s.publish(ctx, topic, item, previous)
	return item, nil
}

// ChangeStatus moves an item to status.
func (s *RoadmapService) ChangeStatus(ctx context.Context, eventID, id string, status models.Status) (models.RoadmapItem, error) {
	if err := domainsvcs.ValidateStatus(status); err != nil {
		return models.RoadmapItem{}, err
	}
	return s.Update(ctx, eventID, id, models.ItemPatch{Status: &status})
}

// Delete removes an item scoped to eventID.
func (s *RoadmapService) Delete(ctx context.Context, eventID, id string) error {
	item, err := s.Get(ctx, eventID, id)
	if err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if item.EventID == "" {
		item.EventID = eventID
	}
	s.publish(ctx, events.TopicItemDeleted, item, "")
	s.log.InfoContext(ctx, "roadmap item deleted", "item_id", id, "roadmap_event_id", eventID)
	return nil
}

// Activity pages the recorded change log of an event, newest first.
func (s *RoadmapService) Activity(ctx context.Context, eventID string, opts repositories.QueryOpts) ([]models.Activity, int, error) {
	if s.activity == nil {
		return []models.Activity{}, 0, nil
	}
	list, total, err := s.activity.ListByEvent(ctx, eventID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	return list, total, nil
}

func (s *RoadmapService) publish(ctx context.Context, topic string, item models.RoadmapItem, previous models.Status) {
	if s.publisher == nil {
		return
	}
	evt := events.NewItemEvent(topic, item, s.now())
	evt.PreviousStatus = previous
	if err := s.publisher.Publish(ctx, topic, evt); err != nil {
		s.log.ErrorContext(ctx, "publish roadmap event failed", "topic", topic, "item_id", item.ID, "error", err)
	}
}
