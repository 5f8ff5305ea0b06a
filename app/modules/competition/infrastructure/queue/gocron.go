package competitionqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// CronScheduler runs the sync in process with gocron. It is used when no
// database is configured.
type CronScheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	syncer    Syncer
	logger    *slog.Logger
	metrics   Metrics
	timeout   time.Duration
}

var _ Scheduler = (*CronScheduler)(nil)

// NewCronScheduler creates a scheduler that syncs every interval. Each run is
// bounded by timeout, or by interval when timeout is zero.
func NewCronScheduler(interval, timeout time.Duration, syncer Syncer, logger *slog.Logger, metrics Metrics, opts ...gocron.SchedulerOption) (*CronScheduler, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	if timeout <= 0 {
		timeout = interval
	}
	return &CronScheduler{
		scheduler: s,
		interval:  interval,
		syncer:    syncer,
		logger:    logger.With(attr.String("component", "gocron")),
		metrics:   metrics,
		timeout:   timeout,
	}, nil
}

// Start registers the sync job and starts the scheduler.
func (s *CronScheduler) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "gocron")

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
			defer cancel()
			runCtx = attr.WithCorrelationID(runCtx, "gocron-"+uuid.NewString())
			_ = runSync(runCtx, s.logger, s.syncer, "periodic")
		}),
		gocron.WithName("sync_snapshot"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "gocron")
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	s.scheduler.Start()
	s.metrics.RecordOperationSuccess(ctx, "start_service", "gocron")
	s.logger.Info("Sync scheduler started", attr.Duration("interval", s.interval))
	return nil
}

// Stop shuts the scheduler down, waiting for a running sync.
func (s *CronScheduler) Stop(ctx context.Context) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "gocron")
	if err := s.scheduler.Shutdown(); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "gocron")
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "gocron")
	s.metrics.RecordOperationDuration(ctx, "stop_service", "gocron", time.Since(start))
	s.logger.Info("Sync scheduler stopped")
	return nil
}
