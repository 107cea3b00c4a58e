package models

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a roadmap item. Transitions are
// unconstrained: every status is reachable from every other.
type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusSearching  Status = "SEARCHING"
	StatusContracted Status = "CONTRACTED"
	StatusCompleted  Status = "COMPLETED"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPlanning, StatusSearching, StatusContracted, StatusCompleted}

// Valid reports whether s is one of the four lifecycle values.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusSearching, StatusContracted, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Ptr returns a pointer to s, for ItemPatch literals.
func (s Status) Ptr() *Status { return &s }

// Label is the Portuguese label shown by the marketplace UI.
func (s Status) Label() string {
	switch s {
	case StatusPlanning:
		return "Planejando"
	case StatusSearching:
		return "Buscando"
	case StatusContracted:
		return "Contratado"
	case StatusCompleted:
		return "Concluído"
	}
	return string(s)
}

// ParseStatus accepts a status in any letter case and surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}
