// Package backend opens the goal source selected by configuration.
package backend

import (
	"lifegoals/internal/goals"
)

// Source is an opened goal source. Close releases whatever it holds and is
// never nil.
type Source struct {
	Type   Type
	Lister goals.Lister
	Close  func() error
}

// Config selects and configures a goal source.
type Config struct {
	Type Type

	// memory: optional YAML seed file, built-in goals when empty
	SeedFile string

	// sqlite
	SQLiteDBPath string

	// sheets
	SpreadsheetID string
	SheetName     string
}

// Type names a goal source implementation.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
	Sheets Type = "sheets"
)

// IsValid reports whether t names a known source.
func (t Type) IsValid() bool {
	_, ok := openers[t]
	return ok
}

// Types lists the valid source names.
func Types() []string {
	return []string{string(Memory), string(SQLite), string(Sheets)}
}
