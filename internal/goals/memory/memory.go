package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"lifegoals/internal/core"
	"lifegoals/internal/goals"
)

var _ goals.Lister = (*Store)(nil)

// Store serves a fixed goal list held in memory.
type Store struct {
	goals []core.Goal
}

// New validates gs and returns a store over a private copy.
func New(gs []core.Goal) (*Store, error) {
	if err := core.ValidateGoals(gs); err != nil {
		return nil, err
	}
	own := make([]core.Goal, len(gs))
	copy(own, gs)
	return &Store{goals: own}, nil
}

// NewSeeded returns a store over the built-in goals.
func NewSeeded() *Store {
	return &Store{goals: core.SeedGoals()}
}

// NewFromFile loads goals from a YAML seed file. A missing path falls back
// to the built-in goals.
func NewFromFile(path string) (*Store, error) {
	if path == "" {
		return NewSeeded(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSeeded(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	gs, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return New(gs)
}

// ListGoals implements goals.Lister
func (s *Store) ListGoals(_ context.Context) ([]core.Goal, error) {
	out := make([]core.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

type seedFile struct {
	Goals []seedGoal `yaml:"goals"`
}

type seedGoal struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Description string        `yaml:"description"`
	Progress    int           `yaml:"progress"`
	Category    core.Category `yaml:"category"`
}

// ParseSeed decodes a YAML document of the form
//
//	goals:
//	  - id: "1"
//	    title: ...
//	    description: ...
//	    progress: 45
//	    category: career
func ParseSeed(data []byte) ([]core.Goal, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	out := make([]core.Goal, 0, len(f.Goals))
	for _, g := range f.Goals {
		out = append(out, core.Goal{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Progress:    g.Progress,
			Category:    g.Category,
		})
	}
	return out, nil
}
