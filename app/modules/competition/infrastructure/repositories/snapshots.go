package competitiondb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a snapshot is not found.
var ErrNotFound = errors.New("snapshot not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new snapshot repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Save inserts a snapshot, replacing the payload if the id already exists.
func (r *Impl) Save(ctx context.Context, db bun.IDB, snapshot *Snapshot) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(snapshot).
		On("CONFLICT (id) DO UPDATE").
		Set("fetched_at = EXCLUDED.fetched_at").
		Set("participants = EXCLUDED.participants").
		Set("blocks = EXCLUDED.blocks").
		Set("ascensions = EXCLUDED.ascensions").
		Set("score_options = EXCLUDED.score_options").
		Set("participant_count = EXCLUDED.participant_count").
		Set("block_count = EXCLUDED.block_count").
		Set("ascension_count = EXCLUDED.ascension_count").
		Set("issue_count = EXCLUDED.issue_count").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Latest returns the snapshot with the newest fetched_at.
func (r *Impl) Latest(ctx context.Context, db bun.IDB) (*Snapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(Snapshot)
	err := db.NewSelect().
		Model(snapshot).
		Order("fetched_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return snapshot, nil
}

// GetByID retrieves a snapshot by id.
func (r *Impl) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Snapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(Snapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}
	return snapshot, nil
}

// Prune keeps the newest keep snapshots. keep below one is treated as one.
func (r *Impl) Prune(ctx context.Context, db bun.IDB, keep int) (int64, error) {
	db = r.resolveDB(db)
	if keep < 1 {
		keep = 1
	}

	newest := db.NewSelect().
		Model((*Snapshot)(nil)).
		Column("id").
		Order("fetched_at DESC").
		Limit(keep)

	result, err := db.NewDelete().
		Model((*Snapshot)(nil)).
		Where("id NOT IN (?)", newest).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
