package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"lifegoals/internal/core"
	"lifegoals/internal/goals"

	_ "modernc.org/sqlite"
)

var (
	_ goals.Lister = (*SQLiteRepository)(nil)
	_ goals.Pinger = (*SQLiteRepository)(nil)
)

// SQLiteRepository reads goals from a migrated SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := MigrateSchema(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	slog.Debug("Goals schema ready", "path", dbPath, "version", version)

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping implements goals.Pinger
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

const listGoalsQuery = `
SELECT id, title, description, progress, category
FROM goals
ORDER BY position, id`

// ListGoals implements goals.Lister
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, listGoalsQuery)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g   core.Goal
			cat string
		)
		if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.Progress, &cat); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Category, err = core.ParseCategory(cat); err != nil {
			return nil, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}

	slog.DebugContext(ctx, "Goals loaded from SQLite", "count", len(out))
	return out, nil
}
