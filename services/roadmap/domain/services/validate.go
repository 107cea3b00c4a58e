package services

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ghuser/eventplanner/services/roadmap/domain"
	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

const (
	maxTitleLen       = 255
	maxCategoryLen    = 100
	maxDescriptionLen = 2000
)

// ValidateNewItem checks a creation request before anything is sent to the
// backend. The returned error wraps domain.ErrInvalidItem and a
// domain.FieldErrors keyed by JSON field name; an invalid status wraps
// domain.ErrInvalidStatus as well.
func ValidateNewItem(in models.NewItem) error {
	fields := domain.FieldErrors{}
	if strings.TrimSpace(in.EventID) == "" {
		fields["eventId"] = "This field is required"
	}
	checkText(fields, "category", &in.Category, maxCategoryLen, true)
	checkText(fields, "title", &in.Title, maxTitleLen, true)
	checkText(fields, "description", &in.Description, maxDescriptionLen, false)
	checkPrice(fields, in.Price)
	return withStatus(fields, statusPtr(in.Status))
}

// ValidatePatch checks a partial update. Only present fields are checked;
// an empty patch is rejected.
func ValidatePatch(p models.ItemPatch) error {
	fields := domain.FieldErrors{}
	if p.Empty() {
		fields["body"] = "At least one field must be provided"
		return fields.Err()
	}
	checkText(fields, "category", p.Category, maxCategoryLen, true)
	checkText(fields, "title", p.Title, maxTitleLen, true)
	checkText(fields, "description", p.Description, maxDescriptionLen, false)
	if p.Price != nil {
		checkPrice(fields, *p.Price)
	}
	return withStatus(fields, p.Status)
}

// ValidateStatus rejects anything but the four lifecycle values.
func ValidateStatus(s models.Status) error {
	return withStatus(domain.FieldErrors{}, &s)
}

func statusPtr(s models.Status) *models.Status {
	if s == "" {
		return nil
	}
	return &s
}

func withStatus(fields domain.FieldErrors, s *models.Status) error {
	if s != nil && !s.Valid() {
		fields["status"] = "Must be one of: PLANNING, SEARCHING, CONTRACTED, COMPLETED"
		return errors.Join(domain.ErrInvalidStatus, fields.Err())
	}
	return fields.Err()
}

func checkText(fields domain.FieldErrors, name string, v *string, maxLen int, required bool) {
	if v == nil {
		return
	}
	if required && strings.TrimSpace(*v) == "" {
		fields[name] = "This field is required"
		return
	}
	if utf8.RuneCountInString(*v) > maxLen {
		fields[name] = "Maximum length is " + strconv.Itoa(maxLen)
	}
}

func checkPrice(fields domain.FieldErrors, price string) {
	if strings.TrimSpace(price) == "" {
		return
	}
	v, ok := ParsePrice(price)
	switch {
	case !ok:
		fields["price"] = "Must be a valid amount"
	case v < 0:
		fields["price"] = "Must not be negative"
	}
}
