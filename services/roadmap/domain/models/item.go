package models

import "time"

// FilterAll is the sentinel that disables a status or category filter.
const FilterAll = "all"

// RoadmapItem is a planning line-item attached to an event, e.g. "hire a DJ".
// Items live in the marketplace backend; this type mirrors its record.
type RoadmapItem struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
} // @name RoadmapItem

// NewItem holds the fields of an item about to be created. An empty Status
// means PLANNING.
type NewItem struct {
	EventID     string
	Category    string
	Title       string
	Description string
	Price       string
	Status      Status
}

// ItemPatch is a partial update; nil fields are left untouched.
type ItemPatch struct {
	Category    *string
	Title       *string
	Description *string
	Price       *string
	Status      *Status
}

// Empty reports whether the patch changes nothing.
func (p ItemPatch) Empty() bool {
	return p.Category == nil && p.Title == nil && p.Description == nil && p.Price == nil && p.Status == nil
}

// Apply returns a copy of item with the patch applied. Used by in-memory
// backends; the real backend applies patches server-side.
func (p ItemPatch) Apply(item RoadmapItem) RoadmapItem {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	return item
}

// Filter selects items by status and category; FilterAll (or "") matches anything.
type Filter struct {
	Status   string
	Category string
}

// AllItems is the filter that keeps everything.
var AllItems = Filter{Status: FilterAll, Category: FilterAll}

// Summary counts items per status. Items carrying a status outside the four
// lifecycle values count toward Total and Unrecognized only.
type Summary struct {
	Total        int `json:"total"`
	Planning     int `json:"planning"`
	Searching    int `json:"searching"`
	Contracted   int `json:"contracted"`
	Completed    int `json:"completed"`
	Unrecognized int `json:"unrecognized"`
} // @name RoadmapSummary

// Budget sums parsable item prices.
type Budget struct {
	Planned   float64 `json:"planned"`
	Committed float64 `json:"committed"`
	Unpriced  int     `json:"unpriced"`
} // @name RoadmapBudget

// Overview is what the roadmap page renders: the filtered list plus
// dashboard numbers computed over the whole event.
type Overview struct {
	Items      []RoadmapItem `json:"items"`
	Summary    Summary       `json:"summary"`
	Completion int           `json:"completion"`
	Budget     Budget        `json:"budget"`
	Categories []string      `json:"categories"`
} // @name RoadmapOverview
