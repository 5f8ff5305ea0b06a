package competitionqueue

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

// RiverScheduler runs the sync as a River periodic job, so only one instance
// of the service syncs per tick.
type RiverScheduler struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	metrics Metrics
}

var _ Scheduler = (*RiverScheduler)(nil)

// NewRiverScheduler connects to dsn and configures the periodic sync job.
func NewRiverScheduler(ctx context.Context, dsn string, interval time.Duration, syncer Syncer, logger *slog.Logger, metrics Metrics) (*RiverScheduler, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		ctxLogger.Error("Failed to ping database for River", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewSyncSnapshotWorker(ctxLogger, syncer))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			SyncQueue: {MaxWorkers: 1},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(interval),
				func() (river.JobArgs, *river.InsertOpts) {
					return SyncSnapshotJob{Reason: "periodic"}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
		Logger: ctxLogger,
	})
	if err != nil {
		pool.Close()
		ctxLogger.Error("Failed to create River client", attr.Error(err))
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	return &RiverScheduler{
		client:  client,
		pool:    pool,
		logger:  ctxLogger,
		metrics: metrics,
	}, nil
}

// Start starts the River client.
func (s *RiverScheduler) Start(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")

	if err := s.client.Start(ctx); err != nil {
		s.logger.Error("Failed to start River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.metrics.RecordOperationDuration(ctx, "start_service", "river", time.Since(start))
	s.logger.Info("Sync queue started")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *RiverScheduler) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.logger.Error("Failed to stop River client", attr.Error(err))
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "river", time.Since(start))
	s.logger.Info("Sync queue stopped")
	return nil
}

// Enqueue requests an immediate sync outside the periodic schedule.
func (s *RiverScheduler) Enqueue(ctx context.Context, reason string) (int64, error) {
	res, err := s.client.Insert(ctx, SyncSnapshotJob{Reason: reason}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to enqueue sync: %w", err)
	}
	return res.Job.ID, nil
}

func jobCorrelationID(id int64) string {
	return "river-job-" + strconv.FormatInt(id, 10)
}
