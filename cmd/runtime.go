package cmd

import (
	"context"
	"fmt"
	"time"

	"ssh-to-terminal/core/config"
	"ssh-to-terminal/core/database"
	"ssh-to-terminal/core/journal"
	"ssh-to-terminal/core/logger"
	"ssh-to-terminal/core/storage"
	"ssh-to-terminal/core/terminal"
	"ssh-to-terminal/feature/profiles"

	"go.uber.org/zap"
)

// loadConfig loads configuration and builds the logger, honoring --debug.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if debugLog {
		cfg.Log.Level = "debug"
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// requirements selects the optional collaborators a command needs.
type requirements struct {
	validator bool
	backup    bool
	journal   bool
}

// newService wires the profiles service from configuration. The returned
// cleanup func closes the journal database.
func newService(ctx context.Context, cfg *config.Config, l *zap.Logger, req requirements) (*profiles.Service, func(), error) {
	cleanup := func() {}

	var validator terminal.Validator
	if req.validator && cfg.Terminal.Validate {
		timeout := time.Duration(cfg.Terminal.SchemaTimeoutSeconds) * time.Second
		validator = terminal.NewSchemaValidator(cfg.Terminal.SchemaURL, timeout, l)
	}

	var client storage.Client
	if req.backup && cfg.Backup.Enabled {
		if err := cfg.Backup.Validate(); err != nil {
			return nil, cleanup, err
		}
		c, err := storage.NewClient(cfg.Backup)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to storage: %w", err)
		}
		client = c
	}

	var store *journal.Store
	if req.journal && cfg.Journal.Enabled {
		s, closeDB, err := openJournal(ctx, cfg.Journal)
		if err != nil {
			// The journal is optional; a sync still runs without it.
			l.Warn("Run journal unavailable", zap.Error(err))
		} else {
			store = s
			cleanup = closeDB
		}
	}

	svc := profiles.NewService(l, validator, client, cfg.Backup.Bucket, cfg.Backup.Prefix, store)
	return svc, cleanup, nil
}

// openJournal connects to the journal database and migrates its tables.
func openJournal(ctx context.Context, cfg database.Config) (*journal.Store, func(), error) {
	if !cfg.IsValidDriver() {
		return nil, nil, fmt.Errorf("unsupported journal driver %q", cfg.Driver)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	store := journal.NewStore(db)
	if err := store.Migrate(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return store, closeDB, nil
}
