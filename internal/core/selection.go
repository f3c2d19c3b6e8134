package core

// Selection is the transient UI state of the dashboard. The zero value has
// nothing selected.
type Selection struct {
	Category Category
	GoalID   string
}

// ToggleCategory selects c, or clears the category if c is already
// selected. The selected goal is kept.
func (s Selection) ToggleCategory(c Category) Selection {
	if s.Category == c {
		s.Category = 0
	} else {
		s.Category = c
	}
	return s
}

// ToggleGoal selects the goal id, or clears it if already selected. The
// selected category is kept.
func (s Selection) ToggleGoal(id string) Selection {
	if s.GoalID == id {
		s.GoalID = ""
	} else {
		s.GoalID = id
	}
	return s
}

// ClearCategory drops the category filter and keeps the selected goal.
func (s Selection) ClearCategory() Selection {
	s.Category = 0
	return s
}

// HasCategory reports whether a category filter is active.
func (s Selection) HasCategory() bool {
	return s.Category != 0
}
