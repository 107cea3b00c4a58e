package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
	"github.com/ghuser/eventplanner/services/roadmap/domain/repositories"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CreateItemRequest is the request body for POST /events/{eventId}/roadmap.
type CreateItemRequest struct {
	Category    string `json:"category"    validate:"required,notblank,max=100"  example:"Música"`
	Title       string `json:"title"       validate:"required,notblank,max=255"  example:"Contratar DJ"`
	Description string `json:"description" validate:"max=2000"                   example:"Pista das 22h às 4h"`
	Price       string `json:"price"       validate:"max=32"                     example:"R$ 1.800,00"`
	Status      string `json:"status"      validate:"omitempty,oneof=PLANNING SEARCHING CONTRACTED COMPLETED" example:"PLANNING"`
} // @name CreateRoadmapItemRequest

func (r CreateItemRequest) toNewItem() models.NewItem {
	return models.NewItem{
		Category:    strings.TrimSpace(r.Category),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Price:       strings.TrimSpace(r.Price),
		Status:      models.Status(r.Status),
	}
}

// UpdateItemRequest is the partial body for PUT /events/{eventId}/roadmap/{id}.
// Omitted fields are left unchanged.
type UpdateItemRequest struct {
	Category    *string `json:"category,omitempty"    validate:"omitempty,notblank,max=100"`
	Title       *string `json:"title,omitempty"       validate:"omitempty,notblank,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *string `json:"price,omitempty"       validate:"omitempty,max=32"`
	Status      *string `json:"status,omitempty"      validate:"omitempty,oneof=PLANNING SEARCHING CONTRACTED COMPLETED"`
} // @name UpdateRoadmapItemRequest

func (r UpdateItemRequest) toPatch() models.ItemPatch {
	p := models.ItemPatch{
		Category:    r.Category,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
	}
	if r.Status != nil {
		p.Status = models.Status(*r.Status).Ptr()
	}
	return p
}

// ChangeStatusRequest is the body for PATCH /events/{eventId}/roadmap/{id}/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PLANNING SEARCHING CONTRACTED COMPLETED" example:"CONTRACTED"`
} // @name ChangeRoadmapStatusRequest

// ActivityPage is the response payload of the activity feed.
type ActivityPage struct {
	Items  []models.Activity `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
} // @name RoadmapActivityPage

// filterFromQuery reads ?status= and ?category=. Status is matched in any
// letter case; an unknown status is a validation error.
func filterFromQuery(r *http.Request) (models.Filter, error) {
	q := r.URL.Query()
	f := models.Filter{Status: models.FilterAll, Category: models.FilterAll}

	if raw := strings.TrimSpace(q.Get("status")); raw != "" && !strings.EqualFold(raw, models.FilterAll) {
		st, err := models.ParseStatus(raw)
		if err != nil {
			return f, errors.Join(domain.ErrInvalidStatus, domain.FieldErrors{
				"status": "Must be one of: all, PLANNING, SEARCHING, CONTRACTED, COMPLETED",
			}.Err())
		}
		f.Status = string(st)
	}
	if c := strings.TrimSpace(q.Get("category")); c != "" {
		f.Category = c
	}
	return f, nil
}

// pageFromQuery reads ?limit= and ?offset=, clamping bad values to defaults.
func pageFromQuery(r *http.Request) repositories.QueryOpts {
	q := r.URL.Query()
	opts := repositories.QueryOpts{Limit: defaultPageSize}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		opts.Limit = min(n, maxPageSize)
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		opts.Offset = n
	}
	return opts
}
