// Package services contains the pure roadmap rules: filtering, per-status
// aggregation, completion, price parsing and input validation. Nothing here
// performs I/O or mutates its arguments.
package services

import (
	"sort"

	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

// FilterItems keeps an item iff its status matches statusFilter and its
// category matches categoryFilter. models.FilterAll (or "") disables a
// filter. Order is preserved and the result is always a new slice.
func FilterItems(items []models.RoadmapItem, statusFilter, categoryFilter string) []models.RoadmapItem {
	out := make([]models.RoadmapItem, 0, len(items))
	for _, it := range items {
		if !matches(statusFilter, string(it.Status)) || !matches(categoryFilter, it.Category) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Apply is FilterItems driven by a models.Filter.
func Apply(items []models.RoadmapItem, f models.Filter) []models.RoadmapItem {
	return FilterItems(items, f.Status, f.Category)
}

func matches(filter, value string) bool {
	return filter == "" || filter == models.FilterAll || filter == value
}

// AggregateByStatus counts items per status. Planning, Searching, Contracted,
// Completed and Unrecognized always sum to Total.
func AggregateByStatus(items []models.RoadmapItem) models.Summary {
	s := models.Summary{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case models.StatusPlanning:
			s.Planning++
		case models.StatusSearching:
			s.Searching++
		case models.StatusContracted:
			s.Contracted++
		case models.StatusCompleted:
			s.Completed++
		default:
			s.Unrecognized++
		}
	}
	return s
}

// CompletionPercentage is round-half-up(100 * contracted / total), or 0 for
// an empty list. 1 of 8 contracted (12.5%) yields 13.
func CompletionPercentage(items []models.RoadmapItem) int {
	return CompletionOf(AggregateByStatus(items))
}

// CompletionOf computes the completion percentage from a precomputed Summary.
func CompletionOf(s models.Summary) int {
	if s.Total == 0 {
		return 0
	}
	return (200*s.Contracted + s.Total) / (2 * s.Total)
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(items []models.RoadmapItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	sort.Strings(out)
	return out
}

// BuildOverview assembles the page view: the filtered items plus summary,
// completion, budget and categories over the full list.
func BuildOverview(items []models.RoadmapItem, f models.Filter) models.Overview {
	summary := AggregateByStatus(items)
	return models.Overview{
		Items:      Apply(items, f),
		Summary:    summary,
		Completion: CompletionOf(summary),
		Budget:     BudgetTotals(items),
		Categories: Categories(items),
	}
}
