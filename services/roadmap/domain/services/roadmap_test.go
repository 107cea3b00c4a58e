package services

import (
	"reflect"
	"testing"

	"github.com/ghuser/eventplanner/services/roadmap/domain/models"
)

func seed() []models.RoadmapItem {
	return []models.RoadmapItem{
		{ID: "1", Status: models.StatusPlanning, Category: "WEDDING"},
		{ID: "2", Status: models.StatusContracted, Category: "WEDDING"},
		{ID: "3", Status: models.StatusContracted, Category: "BIRTHDAY"},
	}
}

func ids(items []models.RoadmapItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestEndToEndScenario(t *testing.T) {
	list := seed()

	if got := ids(FilterItems(list, "CONTRACTED", models.FilterAll)); !reflect.DeepEqual(got, []string{"2", "3"}) {
		t.Errorf("filter: got %v, want [2 3]", got)
	}
	want := models.Summary{Total: 3, Planning: 1, Contracted: 2}
	if got := AggregateByStatus(list); got != want {
		t.Errorf("aggregate: got %+v, want %+v", got, want)
	}
	if got := CompletionPercentage(list); got != 67 {
		t.Errorf("completion: got %d, want 67", got)
	}
}

func TestFilterItems(t *testing.T) {
	list := seed()
	tests := []struct {
		name     string
		status   string
		category string
		want     []string
	}{
		{"all all", models.FilterAll, models.FilterAll, []string{"1", "2", "3"}},
		{"empty filters match everything", "", "", []string{"1", "2", "3"}},
		{"status only", "PLANNING", models.FilterAll, []string{"1"}},
		{"category only", models.FilterAll, "WEDDING", []string{"1", "2"}},
		{"conjunction", "CONTRACTED", "WEDDING", []string{"2"}},
		{"no match", "COMPLETED", models.FilterAll, []string{}},
		{"unknown category", models.FilterAll, "FUNERAL", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterItems(list, tt.status, tt.category)
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("got %v, want %v", ids(got), tt.want)
			}
			if again := FilterItems(got, tt.status, tt.category); !reflect.DeepEqual(again, got) {
				t.Errorf("filter is not idempotent: %v then %v", ids(got), ids(again))
			}
			for _, it := range got {
				if tt.status != models.FilterAll && tt.status != "" && string(it.Status) != tt.status {
					t.Errorf("item %s has status %s", it.ID, it.Status)
				}
				if tt.category != models.FilterAll && tt.category != "" && it.Category != tt.category {
					t.Errorf("item %s has category %s", it.ID, it.Category)
				}
			}
		})
	}
}

func TestFilterItems_DoesNotMutateInput(t *testing.T) {
	list := seed()
	before := append([]models.RoadmapItem(nil), list...)

	out := FilterItems(list, "CONTRACTED", models.FilterAll)
	if len(out) > 0 {
		out[0].Title = "changed"
	}

	if !reflect.DeepEqual(list, before) {
		t.Fatal("input list was mutated")
	}
}

func TestFilterItems_EmptyInput(t *testing.T) {
	got := FilterItems(nil, models.FilterAll, models.FilterAll)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAggregateByStatus_Partition(t *testing.T) {
	var list []models.RoadmapItem
	for i, s := range []models.Status{
		models.StatusPlanning, models.StatusSearching, models.StatusSearching,
		models.StatusContracted, models.StatusCompleted, models.StatusCompleted,
	} {
		list = append(list, models.RoadmapItem{ID: string(rune('a' + i)), Status: s})
	}

	s := AggregateByStatus(list)
	if s.Planning+s.Searching+s.Contracted+s.Completed != s.Total {
		t.Fatalf("buckets do not sum to total: %+v", s)
	}
	want := models.Summary{Total: 6, Planning: 1, Searching: 2, Contracted: 1, Completed: 2}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestAggregateByStatus_UnrecognizedStatus(t *testing.T) {
	list := append(seed(), models.RoadmapItem{ID: "4", Status: "ARCHIVED"}, models.RoadmapItem{ID: "5"})

	s := AggregateByStatus(list)
	if s.Total != 5 || s.Unrecognized != 2 {
		t.Fatalf("expected total 5 with 2 unrecognized, got %+v", s)
	}
	if s.Planning+s.Searching+s.Contracted+s.Completed+s.Unrecognized != s.Total {
		t.Fatalf("partition broken: %+v", s)
	}
}

func TestCompletionPercentage(t *testing.T) {
	mk := func(contracted, others int) []models.RoadmapItem {
		var out []models.RoadmapItem
		for range contracted {
			out = append(out, models.RoadmapItem{Status: models.StatusContracted})
		}
		for range others {
			out = append(out, models.RoadmapItem{Status: models.StatusPlanning})
		}
		return out
	}
	tests := []struct {
		name       string
		contracted int
		others     int
		want       int
	}{
		{"empty", 0, 0, 0},
		{"half", 1, 1, 50},
		{"one third rounds down", 1, 2, 33},
		{"two thirds rounds up", 2, 1, 67},
		{"12.5 rounds half up", 1, 7, 13},
		{"37.5 rounds half up", 3, 5, 38},
		{"all", 4, 0, 100},
		{"none", 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompletionPercentage(mk(tt.contracted, tt.others)); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompletionPercentage_CompletedDoesNotCount(t *testing.T) {
	list := []models.RoadmapItem{{Status: models.StatusCompleted}, {Status: models.StatusContracted}}
	if got := CompletionPercentage(list); got != 50 {
		t.Errorf("got %d, want 50", got)
	}
}

func TestDeleteThenRelist(t *testing.T) {
	list := seed()
	var remaining []models.RoadmapItem
	for _, it := range list {
		if it.ID != "2" {
			remaining = append(remaining, it)
		}
	}
	for _, it := range FilterItems(remaining, models.FilterAll, models.FilterAll) {
		if it.ID == "2" {
			t.Fatal("deleted item reappeared")
		}
	}
}

func TestCategories(t *testing.T) {
	list := append(seed(), models.RoadmapItem{ID: "4", Category: ""}, models.RoadmapItem{ID: "5", Category: "ANNIVERSARY"})
	want := []string{"ANNIVERSARY", "BIRTHDAY", "WEDDING"}
	if got := Categories(list); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBuildOverview_SummaryCoversWholeList(t *testing.T) {
	ov := BuildOverview(seed(), models.Filter{Status: "PLANNING", Category: models.FilterAll})
	if len(ov.Items) != 1 || ov.Items[0].ID != "1" {
		t.Fatalf("unexpected filtered items %v", ids(ov.Items))
	}
	if ov.Summary.Total != 3 || ov.Completion != 67 {
		t.Errorf("summary should cover the unfiltered list: %+v completion=%d", ov.Summary, ov.Completion)
	}
}
