package backendapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// envelope is the marketplace response shape: {success, message, data}.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// flexString accepts a JSON string or number. The backend sends numeric ids
// and prices on some routes and strings on others.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*f = flexString(n.String())
		return nil
	}
}

type wireItem struct {
	ID          flexString `json:"id"`
	EventID     flexString `json:"eventId"`
	IDEvent     flexString `json:"idEvent"`
	Category    string     `json:"category"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       flexString `json:"price"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (w wireItem) toModel() models.RoadmapItem {
	eventID := string(w.EventID)
	if eventID == "" {
		eventID = string(w.IDEvent)
	}
	return models.RoadmapItem{
		ID:          string(w.ID),
		EventID:     eventID,
		Category:    w.Category,
		Title:       w.Title,
		Description: w.Description,
		Price:       string(w.Price),
		Status:      models.Status(w.Status),
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type createBody struct {
	IDEvent     string        `json:"idEvent"`
	Category    string        `json:"category"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       string        `json:"price"`
	Status      models.Status `json:"status"`
}

type patchBody struct {
	Category    *string        `json:"category,omitempty"`
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *string        `json:"price,omitempty"`
	Status      *models.Status `json:"status,omitempty"`
}
