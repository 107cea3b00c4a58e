// Package memory is an in-process RoadmapBackend for demos and tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

// Backend stores items in a slice guarded by a mutex.
type Backend struct {
	mu    sync.Mutex
	items []models.RoadmapItem
	now   func() time.Time
}

var _ repositories.RoadmapBackend = (*Backend)(nil)

// New returns a Backend holding a copy of seed.
func New(seed []models.RoadmapItem) *Backend {
	return &Backend{items: slices.Clone(seed), now: time.Now}
}

func (b *Backend) List(_ context.Context, eventID string) ([]models.RoadmapItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.RoadmapItem, 0, len(b.items))
	for _, it := range b.items {
		if it.EventID == eventID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (b *Backend) Get(_ context.Context, id string) (models.RoadmapItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return models.RoadmapItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return b.items[i], nil
}

func (b *Backend) Create(_ context.Context, in models.NewItem) (models.RoadmapItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	status := in.Status
	if status == "" {
		status = models.StatusPlanning
	}
	now := b.now().UTC()
	item := models.RoadmapItem{
		ID:          uuid.NewString(),
		EventID:     in.EventID,
		Category:    in.Category,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.items = append(b.items, item)
	return item, nil
}

func (b *Backend) Update(_ context.Context, id string, p models.ItemPatch) (models.RoadmapItem, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return models.RoadmapItem{}, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	item := p.Apply(b.items[i])
	item.UpdatedAt = b.now().UTC()
	b.items[i] = item
	return item, nil
}

func (b *Backend) Delete(_ context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	b.items = slices.Delete(b.items, i, i+1)
	return nil
}

// Ping always succeeds.
func (b *Backend) Ping(context.Context) error { return nil }

func (b *Backend) index(id string) int {
	return slices.IndexFunc(b.items, func(it models.RoadmapItem) bool { return it.ID == id })
}

// SampleItems builds a fresh demo roadmap for owner's event. Each call returns
// a new slice.
func SampleItems(owner auth.Profile, eventID string, now time.Time) []models.RoadmapItem {
	name := owner.Name
	if name == "" {
		name = "Organizador"
	}
	at := now.UTC()
	mk := func(id, category, title, desc, price string, status models.Status) models.RoadmapItem {
		return models.RoadmapItem{
			ID:          id,
			EventID:     eventID,
			Category:    category,
			Title:       title,
			Description: desc,
			Price:       price,
			Status:      status,
			CreatedAt:   at,
			UpdatedAt:   at,
		}
	}
	return []models.RoadmapItem{
		mk("demo-1", "Local", "Reservar salão", "Salão para 120 convidados de "+name, "R$ 4.500,00", models.StatusContracted),
		mk("demo-2", "Buffet", "Contratar buffet", "Jantar completo com bebidas", "R$ 9.800,00", models.StatusSearching),
		mk("demo-3", "Música", "Contratar DJ", "Pista das 22h às 4h", "1800", models.StatusPlanning),
		mk("demo-4", "Fotografia", "Fotógrafo e filmagem", "", "R$ 3.200,00", models.StatusPlanning),
		mk("demo-5", "Decoração", "Flores e arranjos", "Tons de branco e verde", "", models.StatusCompleted),
	}
}
