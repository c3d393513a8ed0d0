package journal

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DefaultLimit is used by Recent when no positive limit is given.
const DefaultLimit = 10

// Store persists sync runs.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store on top of an open connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the journal tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&SyncRun{}, &ProfileChange{}); err != nil {
		return fmt.Errorf("failed to migrate journal: %w", err)
	}
	return nil
}

// Record stores a run together with its changes.
func (s *Store) Record(ctx context.Context, run *SyncRun) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.RunID, err)
	}
	return nil
}

// Recent returns the latest runs, newest first, with their changes.
func (s *Store) Recent(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var runs []SyncRun
	err := s.db.WithContext(ctx).
		Preload("Changes", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Order("started_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
