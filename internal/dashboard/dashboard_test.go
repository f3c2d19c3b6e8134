package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifegoals/internal/core"
)

func newSeedDashboard(t *testing.T, code string) *Dashboard {
	t.Helper()
	loc, err := LookupLocale(code)
	require.NoError(t, err)
	return New(core.SeedGoals(), loc)
}

func cardIDs(v View) []string {
	ids := make([]string, 0, len(v.Cards))
	for _, c := range v.Cards {
		ids = append(ids, c.Goal.ID)
	}
	return ids
}

func TestViewNoSelection(t *testing.T) {
	d := newSeedDashboard(t, "ru")
	v := d.View(core.Selection{})

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, cardIDs(v))
	assert.Equal(t, "Все цели", v.Heading)
	assert.False(t, v.ShowReset)
	assert.Equal(t, 44, v.Overall)

	require.Len(t, v.Tiles, 4)
	want := []struct {
		c        core.Category
		progress int
		noun     string
	}{
		{core.Career, 38, "целей"},
		{core.Health, 63, "цели"},
		{core.Education, 43, "цели"},
		{core.Finance, 33, "целей"},
	}
	for i, w := range want {
		tile := v.Tiles[i]
		assert.Equal(t, w.c, tile.Category)
		assert.Equal(t, w.progress, tile.Progress)
		assert.Equal(t, 2, tile.Count)
		assert.Equal(t, w.noun, tile.Noun)
		assert.False(t, tile.Selected)
		assert.Equal(t, core.Selection{Category: w.c}, tile.Target)
	}
}

func TestViewCategoryToggleRoundTrip(t *testing.T) {
	d := newSeedDashboard(t, "ru")

	v := d.View(core.Selection{}.ToggleCategory(core.Career))
	assert.Equal(t, []string{"1", "2"}, cardIDs(v))
	assert.Equal(t, "Карьера", v.Heading)
	assert.True(t, v.ShowReset)
	assert.True(t, v.Tiles[0].Selected)
	assert.Equal(t, core.Selection{}, v.Tiles[0].Target)
	assert.Equal(t, core.Selection{}, v.Reset)

	v = d.View(v.Tiles[0].Target)
	assert.Len(t, v.Cards, 8)
	assert.False(t, v.ShowReset)
}

func TestViewGoalSelection(t *testing.T) {
	d := newSeedDashboard(t, "en")
	v := d.View(core.Selection{Category: core.Education, GoalID: "3"})

	require.Len(t, v.Cards, 2)
	card := v.Cards[0]
	assert.Equal(t, "3", card.Goal.ID)
	assert.True(t, card.Selected)
	assert.Equal(t, core.StageActive, card.Stage)
	assert.Equal(t, "Actively developing", card.Label)
	assert.Equal(t, core.Selection{Category: core.Education}, card.Target)
	assert.Equal(t, core.Selection{Category: core.Education, GoalID: "4"}, v.Cards[1].Target)
	assert.Equal(t, 1, v.Cards[1].Index)
	assert.Equal(t, "Initial stage", v.Cards[1].Label)

	// Selecting another category keeps the goal selection.
	assert.Equal(t, core.Selection{Category: core.Health, GoalID: "3"}, v.Tiles[1].Target)
	assert.Equal(t, core.Selection{GoalID: "3"}, v.Reset)
	assert.Equal(t, 43, v.Tiles[2].Progress)
}

func TestViewDropsUnknownGoal(t *testing.T) {
	d := newSeedDashboard(t, "en")
	v := d.View(core.Selection{GoalID: "99"})
	assert.Equal(t, core.Selection{}, v.Selection)
	for _, c := range v.Cards {
		assert.False(t, c.Selected)
	}
}

func TestViewEmptyCategory(t *testing.T) {
	loc, _ := LookupLocale("en")
	d := New([]core.Goal{{ID: "x", Title: "x", Progress: 90, Category: core.Health}}, loc)
	v := d.View(core.Selection{Category: core.Career})
	assert.Empty(t, v.Cards)
	assert.Equal(t, 0, v.Tiles[0].Progress)
	assert.Equal(t, 0, v.Tiles[0].Count)
	assert.Equal(t, 90, v.Overall)
}

func TestNewCopiesGoals(t *testing.T) {
	goals := core.SeedGoals()
	loc, _ := LookupLocale("ru")
	d := New(goals, loc)
	goals[0].Progress = 100
	assert.Equal(t, 44, d.View(core.Selection{}).Overall)
}
