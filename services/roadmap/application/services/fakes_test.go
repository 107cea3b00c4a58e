package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ghuser/eventplanner/pkg/auth"
	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/infrastructure/memory"
)

var testNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

// stubBackend wraps the in-memory backend with call counting, injected
// failures and hooks. afterList runs between taking the snapshot and
// returning it; a non-nil error from beforeUpdate fails that update.
type stubBackend struct {
	*memory.Backend

	mu           sync.Mutex
	calls        int
	listErr      error
	mutErr       error
	afterList    func()
	beforeUpdate func(models.ItemPatch) error
}

func newStubBackend() *stubBackend {
	return &stubBackend{Backend: memory.New(memory.SampleItems(auth.Profile{Name: "Ana"}, "ev-1", testNow))}
}

func (b *stubBackend) count() {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
}

func (b *stubBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *stubBackend) List(ctx context.Context, eventID string) ([]models.RoadmapItem, error) {
	b.count()
	if b.listErr != nil {
		return nil, b.listErr
	}
	items, err := b.Backend.List(ctx, eventID)
	if err == nil && b.afterList != nil {
		b.afterList()
	}
	return items, err
}

func (b *stubBackend) Create(ctx context.Context, in models.NewItem) (models.RoadmapItem, error) {
	b.count()
	if b.mutErr != nil {
		return models.RoadmapItem{}, b.mutErr
	}
	return b.Backend.Create(ctx, in)
}

func (b *stubBackend) Update(ctx context.Context, id string, p models.ItemPatch) (models.RoadmapItem, error) {
	b.count()
	if b.beforeUpdate != nil {
		if err := b.beforeUpdate(p); err != nil {
			return models.RoadmapItem{}, err
		}
	}
	if b.mutErr != nil {
		return models.RoadmapItem{}, b.mutErr
	}
	return b.Backend.Update(ctx, id, p)
}

func (b *stubBackend) Delete(ctx context.Context, id string) error {
	b.count()
	if b.mutErr != nil {
		return b.mutErr
	}
	return b.Backend.Delete(ctx, id)
}

var errDown = errors.Join(domain.ErrBackendUnavailable, errors.New("connection refused"))

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	events []events.ItemEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, evt events.ItemEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.events = append(p.events, evt)
	return p.err
}
