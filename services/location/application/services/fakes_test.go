package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ghuser/eventplanner/services/location/domain/models"
)

var errUpstream = errors.New("upstream down")

// stubSource records queries and answers from results or err.
type stubSource struct {
	name    string
	results []models.LocationResult
	err     error

	mu      sync.Mutex
	queries []string
	limits  []int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(_ context.Context, query string, limit int) ([]models.LocationResult, error) {
	s.mu.Lock()
	s.queries = append(s.queries, query)
	s.limits = append(s.limits, limit)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.LocationResult(nil), s.results...), nil
}

func (s *stubSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

func city(name, state string) models.LocationResult {
	full := name
	if state != "" {
		full += ", " + state
	}
	return models.LocationResult{Kind: models.KindCity, Name: name, FullName: full, City: name, State: state}
}
