package google

import (
	"errors"
	"strings"
	"testing"

	"lifegoals/internal/core"
)

func TestParseGoals(t *testing.T) {
	values := [][]interface{}{
		{"Category", "ID", "Title", "Description", "Progress"},
		{"career", "1", "Lead engineer", "Lead a large project", 45.0},
		{"", "", "", "", ""},
		{"Health", "5", "Healthy back", "", "70%"},
		{"finance", "7", "Safety net", "Six months of reserves", "39,5"},
	}
	gs, err := parseGoals(values)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if len(gs) != 3 {
		t.Fatalf("expected 3 goals, got %d: %+v", len(gs), gs)
	}
	want := []core.Goal{
		{ID: "1", Title: "Lead engineer", Description: "Lead a large project", Progress: 45, Category: core.Career},
		{ID: "5", Title: "Healthy back", Progress: 70, Category: core.Health},
		{ID: "7", Title: "Safety net", Description: "Six months of reserves", Progress: 40, Category: core.Finance},
	}
	for i := range want {
		if gs[i] != want[i] {
			t.Fatalf("goal %d: expected %+v, got %+v", i, want[i], gs[i])
		}
	}
}

func TestParseGoalsMissingHeader(t *testing.T) {
	_, err := parseGoals([][]interface{}{{"ID", "Title"}})
	if err == nil || !strings.Contains(err.Error(), "missing Progress,Category") {
		t.Fatalf("expected missing header error, got %v", err)
	}
}

func TestParseGoalsBadRows(t *testing.T) {
	header := []interface{}{"ID", "Title", "Progress", "Category"}

	_, err := parseGoals([][]interface{}{header, {"1", "t", "abc", "career"}})
	if !errors.Is(err, core.ErrInvalidProgress) {
		t.Fatalf("expected invalid progress, got %v", err)
	}

	_, err = parseGoals([][]interface{}{header, {"1", "t", "10", "hobby"}})
	if !errors.Is(err, core.ErrUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
}

func TestParseGoalsEmpty(t *testing.T) {
	gs, err := parseGoals(nil)
	if err != nil || len(gs) != 0 {
		t.Fatalf("expected empty result, got %v %v", gs, err)
	}
}
