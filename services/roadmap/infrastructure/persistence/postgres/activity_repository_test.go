package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/eventplanner/pkg/database"
	"github.com/ghuser/eventplanner/pkg/logger"
	"github.com/ghuser/eventplanner/pkg/migrator"
	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

func testRepo(t *testing.T) *ActivityRepository {
	t.Helper()
	url := os.Getenv("PLANNER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PLANNER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := database.NewPool(ctx, url, logger.Discard())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrator.Up(ctx, db.DB(), os.DirFS("../../../../../migrations/roadmap")); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewActivityRepository(db)
}

func TestActivityRepository_RecordIsIdempotent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	roadmapEvent := "ev-" + uuid.NewString()

	item := models.RoadmapItem{ID: "i1", EventID: roadmapEvent, Title: "DJ", Category: "Música", Status: models.StatusContracted}
	evt := events.NewItemEvent(events.TopicItemStatusChanged, item, time.Now())
	evt.PreviousStatus = models.StatusSearching

	recorded, err := repo.Record(ctx, evt)
	if err != nil || !recorded {
		t.Fatalf("first Record: recorded=%v err=%v", recorded, err)
	}
	recorded, err = repo.Record(ctx, evt)
	if err != nil || recorded {
		t.Fatalf("redelivery: recorded=%v err=%v", recorded, err)
	}

	list, total, err := repo.ListByEvent(ctx, roadmapEvent, repositories.QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if total != 1 || len(list) != 1 {
		t.Fatalf("expected one row, got total=%d len=%d", total, len(list))
	}
	got := list[0]
	if got.EventID != evt.EventID || got.Kind != "status_changed" || got.PreviousStatus != models.StatusSearching {
		t.Errorf("unexpected activity %+v", got)
	}
}

func TestActivityRepository_ListNewestFirst(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	roadmapEvent := "ev-" + uuid.NewString()
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, topic := range []string{events.TopicItemCreated, events.TopicItemUpdated, events.TopicItemDeleted} {
		item := models.RoadmapItem{ID: "i1", EventID: roadmapEvent, Title: "Bolo", Status: models.StatusPlanning}
		if _, err := repo.Record(ctx, events.NewItemEvent(topic, item, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Record %s: %v", topic, err)
		}
	}

	page, total, err := repo.ListByEvent(ctx, roadmapEvent, repositories.QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("ListByEvent: %v", err)
	}
	if total != 3 || len(page) != 2 {
		t.Fatalf("expected total=3 page=2, got total=%d page=%d", total, len(page))
	}
	if page[0].Kind != "deleted" || page[1].Kind != "updated" {
		t.Errorf("expected newest first, got %s then %s", page[0].Kind, page[1].Kind)
	}
}
