package backend

import (
	"context"
	"fmt"

	gsheet "lifegoals/internal/goals/google"
	"lifegoals/internal/goals/memory"
	applog "lifegoals/internal/log"
	"lifegoals/internal/storage"
)

type opener func(ctx context.Context, cfg Config, logger *applog.Logger) (*Source, error)

var openers = map[Type]opener{
	Memory: openMemory,
	SQLite: openSQLite,
	Sheets: openSheets,
}

func noClose() error { return nil }

// Open creates the goal source named by cfg.Type.
func Open(ctx context.Context, cfg Config, logger *applog.Logger) (*Source, error) {
	open, ok := openers[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown data backend %q: must be one of %v", cfg.Type, Types())
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentBackend)

	src, err := open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", cfg.Type, err)
	}
	src.Type = cfg.Type
	if src.Close == nil {
		src.Close = noClose
	}
	return src, nil
}

func openMemory(_ context.Context, cfg Config, logger *applog.Logger) (*Source, error) {
	store, err := memory.NewFromFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	logger.Info("Initialized memory backend", "seed_file", cfg.SeedFile)
	return &Source{Lister: store}, nil
}

func openSQLite(_ context.Context, cfg Config, logger *applog.Logger) (*Source, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	return &Source{Lister: repo, Close: repo.Close}, nil
}

func openSheets(ctx context.Context, cfg Config, logger *applog.Logger) (*Source, error) {
	client, err := gsheet.New(ctx, cfg.SpreadsheetID, cfg.SheetName)
	if err != nil {
		return nil, err
	}
	logger.Info("Initialized Google Sheets backend", "sheet", cfg.SheetName)
	return &Source{Lister: client}, nil
}
