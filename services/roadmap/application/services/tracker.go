package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
	domainsvcs "github.com/ghuser/eventplanner/services/roadmap/domain/services"
)

// Tracker holds the item list of one event the way the roadmap page does.
// The list only ever reflects backend-confirmed results and is replaced
// wholesale under mu, so slices handed out earlier never change.
//
// Every mutation of an item takes the next sequence number for that item.
// A confirmed response is applied only if no later request for the same item
// has been applied already; otherwise it is dropped and the call still
// returns the backend's item with a nil error. A later request that fails
// does not block an earlier success.
//
// A Load is dropped when a newer Load started or when any mutation was
// applied while its List was in flight, since its snapshot may predate it.
type Tracker struct {
	backend repositories.RoadmapBackend
	eventID string
	log     logger.Logger

	mu      sync.Mutex
	items   []models.RoadmapItem
	sent    map[string]uint64
	applied map[string]uint64
	version uint64
	loadSeq uint64
}

func NewTracker(backend repositories.RoadmapBackend, eventID string, log logger.Logger) *Tracker {
	return &Tracker{
		backend: backend,
		eventID: eventID,
		log:     log.With("roadmap_event_id", eventID),
		items:   []models.RoadmapItem{},
		sent:    map[string]uint64{},
		applied: map[string]uint64{},
	}
}

// EventID is the marketplace event this tracker follows.
func (t *Tracker) EventID() string { return t.eventID }

// Load fetches the event's items and replaces the list. On failure the list
// is left as it was. A superseded Load returns nil and changes nothing.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	t.loadSeq++
	mine, version := t.loadSeq, t.version
	t.mu.Unlock()

	items, err := t.backend.List(ctx, t.eventID)
	if err != nil {
		t.log.WarnContext(ctx, "roadmap load failed", "error", err)
		return fmt.Errorf("load roadmap: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if mine != t.loadSeq {
		t.log.DebugContext(ctx, "dropping superseded roadmap load")
		return nil
	}
	if version != t.version {
		t.log.DebugContext(ctx, "dropping roadmap load overtaken by a mutation")
		return nil
	}
	t.items = slices.Clone(items)
	return nil
}

// Items returns a copy of the current list.
func (t *Tracker) Items() []models.RoadmapItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.items)
}

// View is the page model: filtered items plus dashboard numbers over the
// whole list.
func (t *Tracker) View(f models.Filter) models.Overview {
	return domainsvcs.BuildOverview(t.Items(), f)
}

// CreateItem validates in, sends it and appends the confirmed item. Invalid
// input never reaches the backend. An empty EventID means this tracker's
// event; an empty Status means PLANNING.
func (t *Tracker) CreateItem(ctx context.Context, in models.NewItem) (models.RoadmapItem, error) {
	if in.EventID == "" {
		in.EventID = t.eventID
	}
	if in.Status == "" {
		in.Status = models.StatusPlanning
	}
	if err := domainsvcs.ValidateNewItem(in); err != nil {
		return models.RoadmapItem{}, err
	}

	item, err := t.backend.Create(ctx, in)
	if err != nil {
		t.log.WarnContext(ctx, "roadmap create failed", "error", err)
		return models.RoadmapItem{}, fmt.Errorf("create item: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := make([]models.RoadmapItem, 0, len(t.items)+1)
	next = append(next, t.items...)
	t.items = append(next, item)
	t.version++
	return item, nil
}

// UpdateItem validates p, sends it and replaces the item by id on success.
func (t *Tracker) UpdateItem(ctx context.Context, id string, p models.ItemPatch) (models.RoadmapItem, error) {
	if err := domainsvcs.ValidatePatch(p); err != nil {
		return models.RoadmapItem{}, err
	}

	mine := t.nextSeq(id)
	item, err := t.backend.Update(ctx, id, p)
	if err != nil {
		t.log.WarnContext(ctx, "roadmap update failed", "item_id", id, "error", err)
		return models.RoadmapItem{}, fmt.Errorf("update item %s: %w", id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.applyLocked(id, mine) {
		t.log.DebugContext(ctx, "dropping superseded roadmap response", "item_id", id, "seq", mine)
		return item, nil
	}
	t.items = replaced(t.items, id, item)
	return item, nil
}

// ChangeStatus is UpdateItem with only the status set.
func (t *Tracker) ChangeStatus(ctx context.Context, id string, s models.Status) (models.RoadmapItem, error) {
	if err := domainsvcs.ValidateStatus(s); err != nil {
		return models.RoadmapItem{}, err
	}
	return t.UpdateItem(ctx, id, models.ItemPatch{Status: &s})
}

// DeleteItem removes the item by id once the backend confirms. The delete
// also takes a sequence number, so slower updates sent before it are dropped.
func (t *Tracker) DeleteItem(ctx context.Context, id string) error {
	mine := t.nextSeq(id)
	if err := t.backend.Delete(ctx, id); err != nil {
		t.log.WarnContext(ctx, "roadmap delete failed", "item_id", id, "error", err)
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.applyLocked(id, mine) {
		return nil
	}
	t.items = slices.DeleteFunc(slices.Clone(t.items), func(it models.RoadmapItem) bool { return it.ID == id })
	return nil
}

func (t *Tracker) nextSeq(id string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent[id]++
	return t.sent[id]
}

// applyLocked reports whether the confirmed response for request mine of id
// is newer than anything applied for id, and records it if so.
func (t *Tracker) applyLocked(id string, mine uint64) bool {
	if mine <= t.applied[id] {
		return false
	}
	t.applied[id] = mine
	t.version++
	return true
}

// replaced returns a copy of items with the element whose ID is id swapped
// for item. items is not modified.
func replaced(items []models.RoadmapItem, id string, item models.RoadmapItem) []models.RoadmapItem {
	out := slices.Clone(items)
	for i := range out {
		if out[i].ID == id {
			out[i] = item
		}
	}
	return out
}
