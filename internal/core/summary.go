package core

// FilterGoals returns the goals belonging to c in their original order.
// A zero category returns the full list.
func FilterGoals(goals []Goal, c Category) []Goal {
	if c == 0 {
		out := make([]Goal, len(goals))
		copy(out, goals)
		return out
	}
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if g.Category == c {
			out = append(out, g)
		}
	}
	return out
}

// CountGoals returns how many goals belong to c.
func CountGoals(goals []Goal, c Category) int {
	n := 0
	for _, g := range goals {
		if g.Category == c {
			n++
		}
	}
	return n
}

// CategoryProgress is the mean progress of the goals in c, rounded half up.
// A category without goals reports 0.
func CategoryProgress(goals []Goal, c Category) int {
	var sum, n int
	for _, g := range goals {
		if g.Category == c {
			sum += g.Progress
			n++
		}
	}
	return roundedMean(sum, n)
}

// OverallProgress is the mean progress of all goals, rounded half up.
// An empty list reports 0.
func OverallProgress(goals []Goal) int {
	sum := 0
	for _, g := range goals {
		sum += g.Progress
	}
	return roundedMean(sum, len(goals))
}

// roundedMean computes round(sum/n) with halves rounded up, for sum >= 0.
func roundedMean(sum, n int) int {
	if n == 0 {
		return 0
	}
	return (2*sum + n) / (2 * n)
}
