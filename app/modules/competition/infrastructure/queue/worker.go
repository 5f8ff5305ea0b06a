package competitionqueue

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/riverqueue/river"
)

// SyncSnapshotWorker executes SyncSnapshotJob.
type SyncSnapshotWorker struct {
	river.WorkerDefaults[SyncSnapshotJob]
	syncer Syncer
	logger *slog.Logger
}

// NewSyncSnapshotWorker creates the worker.
func NewSyncSnapshotWorker(logger *slog.Logger, syncer Syncer) *SyncSnapshotWorker {
	return &SyncSnapshotWorker{syncer: syncer, logger: logger}
}

// Work runs a sync. Errors are returned so River retries the job.
func (w *SyncSnapshotWorker) Work(ctx context.Context, job *river.Job[SyncSnapshotJob]) error {
	ctx = attr.WithCorrelationID(ctx, jobCorrelationID(job.ID))
	return runSync(ctx, w.logger, w.syncer, job.Args.Reason)
}

func runSync(ctx context.Context, logger *slog.Logger, syncer Syncer, reason string) error {
	result, err := syncer.Sync(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Snapshot sync failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("reason", reason),
			attr.Error(err),
		)
		return err
	}
	logger.InfoContext(ctx, "Snapshot synced",
		attr.ExtractCorrelationID(ctx),
		attr.String("reason", reason),
		attr.SnapshotID(result.Snapshot.ID.String()),
		attr.Int("participants", len(result.Snapshot.Participants)),
		attr.Int("blocks", len(result.Snapshot.Blocks)),
		attr.Int("ascensions", len(result.Snapshot.Ascensions)),
		attr.Int("data_issues", result.Issues.Count()),
	)
	return nil
}
