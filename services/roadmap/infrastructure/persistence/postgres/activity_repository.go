package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/eventplanner/pkg/database"
	"github.com/ghuser/eventplanner/services/roadmap/domain/events"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

const (
	insertActivity = `
INSERT INTO roadmap_activity
    (event_id, kind, item_id, roadmap_event_id, title, category, status, previous_status, occurred_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	listActivity = `
SELECT event_id, kind, item_id, roadmap_event_id, title, category, status, previous_status, occurred_at, recorded_at
FROM roadmap_activity
WHERE roadmap_event_id = $1
ORDER BY occurred_at DESC, recorded_at DESC
LIMIT $2 OFFSET $3`

	countActivity = `SELECT count(*) FROM roadmap_activity WHERE roadmap_event_id = $1`
)

// ActivityRepository implements repositories.ActivityRepository against PostgreSQL.
type ActivityRepository struct {
	db *database.Database
}

var _ repositories.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *database.Database) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Record inserts evt keyed by its EventID. A redelivered event hits the
// primary key and reports recorded=false without error.
func (r *ActivityRepository) Record(ctx context.Context, evt events.ItemEvent) (bool, error) {
	_, err := r.db.DB().ExecContext(ctx, insertActivity,
		evt.EventID,
		evt.Kind,
		evt.ItemID,
		evt.RoadmapEventID,
		evt.Title,
		evt.Category,
		string(evt.Status),
		string(evt.PreviousStatus),
		evt.OccurredAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("insert activity: %w", err)
	}
	return true, nil
}

// ListByEvent returns a page of activity, newest first, and the total count.
func (r *ActivityRepository) ListByEvent(ctx context.Context, roadmapEventID string, opts repositories.QueryOpts) ([]models.Activity, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, listActivity, roadmapEventID, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	out := []models.Activity{}
	for rows.Next() {
		var (
			a              models.Activity
			status, before string
		)
		if err := rows.Scan(&a.EventID, &a.Kind, &a.ItemID, &a.RoadmapEventID, &a.Title,
			&a.Category, &status, &before, &a.OccurredAt, &a.RecordedAt); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		a.Status = models.Status(status)
		a.PreviousStatus = models.Status(before)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate activity: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, countActivity, roadmapEventID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}
	return out, total, nil
}
