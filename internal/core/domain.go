package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// Goal is a single life goal. Goals are seeded data and never change
	// while the process runs.
	Goal struct {
		ID          string
		Title       string
		Description string
		Progress    int // percent, 0-100
		Category    Category
	}

	// Stage is the qualitative band a goal's progress falls into.
	Stage uint8
)

const (
	StageInitial Stage = iota
	StageInProgress
	StageActive
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidProgress = errors.New("invalid progress")
	ErrEmptyID         = errors.New("empty goal id")
	ErrEmptyTitle      = errors.New("empty goal title")
	ErrDuplicateID     = errors.New("duplicate goal id")
)

// StageFor returns the stage for a progress value. Each band includes its
// lower bound: [0,30) initial, [30,60) in progress, [60,100] active.
func StageFor(progress int) Stage {
	switch {
	case progress < 30:
		return StageInitial
	case progress < 60:
		return StageInProgress
	default:
		return StageActive
	}
}

// Stage returns the stage of g.
func (g Goal) Stage() Stage {
	return StageFor(g.Progress)
}

// String implements fmt.Stringer
func (s Stage) String() string {
	switch s {
	case StageInitial:
		return "Initial stage"
	case StageInProgress:
		return "In progress"
	case StageActive:
		return "Actively developing"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("%w: %d (goal %s)", ErrInvalidProgress, g.Progress, g.ID)
	}
	if !g.Category.IsValid() {
		return fmt.Errorf("%w (goal %s)", ErrUnknownCategory, g.ID)
	}
	return nil
}

// ValidateGoals validates every goal and checks that ids are unique.
func ValidateGoals(goals []Goal) error {
	seen := make(map[string]struct{}, len(goals))
	for i, g := range goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal at index %d: %w", i, err)
		}
		if _, dup := seen[g.ID]; dup {
			return fmt.Errorf("goal at index %d: %w: %s", i, ErrDuplicateID, g.ID)
		}
		seen[g.ID] = struct{}{}
	}
	return nil
}

// FindGoal returns the goal with the given id.
func FindGoal(goals []Goal, id string) (Goal, bool) {
	for _, g := range goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}
