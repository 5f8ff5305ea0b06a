package competitionservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/Black-And-White-Club/irock/app/shared/observability/metrics"
	"github.com/Black-And-White-Club/irock/app/shared/results"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CompetitionService"

// DefaultKeepSnapshots is how many stored snapshots survive a prune.
const DefaultKeepSnapshots = 48

// Options holds the competition rules the service computes with.
type Options struct {
	GradeTable competitiondomain.CategoryGradeTable
	// StatsGradeTable drives Stats, GradeBreakdown and StatsChart.
	StatsGradeTable  competitiondomain.CategoryGradeTable
	LeaderboardLimit int
	// Location is used for relative dates; defaults to time.Local.
	Location      *time.Location
	KeepSnapshots int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o *Options) applyDefaults() {
	if o.GradeTable == nil {
		o.GradeTable = competitiondomain.DefaultGradeTable()
	}
	if o.StatsGradeTable == nil {
		o.StatsGradeTable = competitiondomain.DefaultStatsGradeTable()
	}
	if o.LeaderboardLimit <= 0 {
		o.LeaderboardLimit = competitiondomain.DefaultLeaderboardLimit
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.KeepSnapshots <= 0 {
		o.KeepSnapshots = DefaultKeepSnapshots
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// CompetitionService implements the Service interface.
type CompetitionService struct {
	backend   competitionbackend.Client
	repo      competitiondb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   metrics.Metrics
	tracer    trace.Tracer
	db        *bun.DB
	opts      Options

	mu     sync.RWMutex
	latest *competitiondomain.Snapshot
}

// NewCompetitionService creates a new CompetitionService. repo and db may be
// nil, in which case snapshots are only kept in memory.
func NewCompetitionService(
	backend competitionbackend.Client,
	repo competitiondb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics metrics.Metrics,
	tracer trace.Tracer,
	db *bun.DB,
	opts Options,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = eventbus.NoopPublisher{Logger: logger}
	}
	opts.applyDefaults()
	return &CompetitionService{
		backend:   backend,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		opts:      opts,
	}
}

func (s *CompetitionService) cached() *competitiondomain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// remember keeps snap unless a newer snapshot is already cached.
func (s *CompetitionService) remember(snap *competitiondomain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil || !snap.FetchedAt.Before(s.latest.FetchedAt) {
		s.latest = snap
	}
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// unwrap converts a telemetry result into the public (value, error) pair.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	return *result.Success, nil
}

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.DebugContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Infrastructure error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Domain failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.DebugContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}

var _ Service = (*CompetitionService)(nil)
