package repositories

import (
	"context"

	"github.com/ghuser/eventplanner/services/location/domain/models"
)

// Source is one geocoding service. Search returns places in the order the
// service ranked them; an error means the source could not answer.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]models.LocationResult, error)
}
