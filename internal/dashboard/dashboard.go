// Package dashboard derives everything the goal dashboard page shows from
// an injected goal list and the current selection.
package dashboard

import (
	"lifegoals/internal/core"
)

type (
	// Dashboard owns a goal list and derives view models from it.
	Dashboard struct {
		goals  []core.Goal
		locale Locale
	}

	// View is the complete, render-ready state of the page.
	View struct {
		Locale    Locale
		Selection core.Selection
		Tiles     []Tile
		Heading   string
		ShowReset bool
		Reset     core.Selection // selection after clicking "show all"
		Cards     []Card
		Overall   int
	}

	// Tile is a category summary.
	Tile struct {
		Category core.Category
		Config   core.CategoryConfig
		Name     string
		Progress int
		Count    int
		Noun     string
		Selected bool
		Target   core.Selection
	}

	// Card is a single goal in the list.
	Card struct {
		Goal     core.Goal
		Config   core.CategoryConfig
		Stage    core.Stage
		Label    string
		Selected bool
		Target   core.Selection
		Index    int
	}
)

// New returns a dashboard over a private copy of goals.
func New(goals []core.Goal, loc Locale) *Dashboard {
	own := make([]core.Goal, len(goals))
	copy(own, goals)
	return &Dashboard{goals: own, locale: loc}
}

// CategoryProgress is the rounded mean progress of category c.
func (d *Dashboard) CategoryProgress(c core.Category) int {
	return core.CategoryProgress(d.goals, c)
}

// OverallProgress is the rounded mean progress of every goal.
func (d *Dashboard) OverallProgress() int {
	return core.OverallProgress(d.goals)
}

// FilteredGoals returns the goals visible under sel.
func (d *Dashboard) FilteredGoals(sel core.Selection) []core.Goal {
	return core.FilterGoals(d.goals, sel.Category)
}

// Normalize drops selection fields that do not refer to known data.
func (d *Dashboard) Normalize(sel core.Selection) core.Selection {
	if sel.Category != 0 && !sel.Category.IsValid() {
		sel.Category = 0
	}
	if sel.GoalID != "" {
		if _, ok := core.FindGoal(d.goals, sel.GoalID); !ok {
			sel.GoalID = ""
		}
	}
	return sel
}

// View builds the page for sel.
func (d *Dashboard) View(sel core.Selection) View {
	sel = d.Normalize(sel)
	v := View{
		Locale:    d.locale,
		Selection: sel,
		Heading:   d.locale.AllGoals,
		ShowReset: sel.HasCategory(),
		Reset:     sel.ClearCategory(),
		Overall:   d.OverallProgress(),
	}
	if sel.HasCategory() {
		v.Heading = d.locale.CategoryName(sel.Category)
	}

	for _, c := range core.Categories() {
		v.Tiles = append(v.Tiles, Tile{
			Category: c,
			Config:   c.Config(),
			Name:     d.locale.CategoryName(c),
			Progress: d.CategoryProgress(c),
			Count:    core.CountGoals(d.goals, c),
			Noun:     d.locale.GoalNoun(c),
			Selected: sel.Category == c,
			Target:   sel.ToggleCategory(c),
		})
	}

	for i, g := range d.FilteredGoals(sel) {
		stage := g.Stage()
		v.Cards = append(v.Cards, Card{
			Goal:     g,
			Config:   g.Category.Config(),
			Stage:    stage,
			Label:    d.locale.StageLabel(stage),
			Selected: sel.GoalID == g.ID,
			Target:   sel.ToggleGoal(g.ID),
			Index:    i,
		})
	}
	return v
}
