package competitiondb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for snapshot persistence.
type Repository interface {
	// Save stores a snapshot.
	Save(ctx context.Context, db bun.IDB, snapshot *Snapshot) error

	// Latest returns the most recently fetched snapshot.
	Latest(ctx context.Context, db bun.IDB) (*Snapshot, error)

	// GetByID retrieves a snapshot by id.
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*Snapshot, error)

	// Prune deletes all but the newest keep snapshots and returns how many were removed.
	Prune(ctx context.Context, db bun.IDB, keep int) (int64, error)
}
