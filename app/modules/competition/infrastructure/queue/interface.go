package competitionqueue

import (
	"context"
	"time"

	competitionservice "github.com/Black-And-White-Club/irock/app/modules/competition/application"
)

// Syncer runs one snapshot refresh.
type Syncer interface {
	Sync(ctx context.Context) (*competitionservice.SyncResult, error)
}

// Metrics records scheduler lifecycle operations.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// Scheduler runs the periodic sync.
type Scheduler interface {
	// Start begins scheduling; the first sync runs immediately.
	Start(ctx context.Context) error
	// Stop waits for a running sync to finish.
	Stop(ctx context.Context) error
}
