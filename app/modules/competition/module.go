package competition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	competitionservice "github.com/Black-And-White-Club/irock/app/modules/competition/application"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	competitionhandlers "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/handlers"
	competitionqueue "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/queue"
	competitiondb "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/repositories"
	competitionrouter "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/router"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
	"github.com/Black-And-White-Club/irock/config"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Dependencies are the shared resources the competition module is built on.
// DB, Router, MessageRouter and Subscriber are optional.
type Dependencies struct {
	DB            *bun.DB
	Backend       competitionbackend.Client
	Publisher     eventbus.Publisher
	Validator     authhandlers.TokenValidator
	Router        chi.Router
	MessageRouter *message.Router
	Subscriber    message.Subscriber
}

// Module represents the competition module.
type Module struct {
	Service       competitionservice.Service
	Router        *competitionrouter.Router
	scheduler     competitionqueue.Scheduler
	cancelFunc    context.CancelFunc
	observability observability.Observability
	logger        *slog.Logger
}

// NewModule wires the repository, service, handlers, routes and the sync
// scheduler. The scheduler is not started until Run.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	deps Dependencies,
) (*Module, error) {
	logger := obs.Logger.With("module", "competition")
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing competition module")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	var repo competitiondb.Repository
	if deps.DB != nil {
		repo = competitiondb.NewRepository(deps.DB)
	}

	service := competitionservice.NewCompetitionService(
		deps.Backend,
		repo,
		deps.Publisher,
		logger,
		obs.Metrics,
		tracer,
		deps.DB,
		competitionservice.Options{
			GradeTable:       cfg.Competition.GradeTable,
			StatsGradeTable:  cfg.Competition.StatsGradeTable,
			LeaderboardLimit: cfg.Competition.LeaderboardLimit,
			Location:         loc,
		},
	)

	handlers := competitionhandlers.NewCompetitionHandlers(service, logger, tracer)
	router := competitionrouter.NewRouter(handlers, deps.Validator, logger)
	if deps.Router != nil {
		router.Mount(deps.Router)
	}
	if deps.MessageRouter != nil && deps.Subscriber != nil {
		router.Configure(deps.MessageRouter, deps.Subscriber)
	}

	scheduler, err := newScheduler(ctx, cfg, service, logger, obs)
	if err != nil {
		return nil, err
	}

	return &Module{
		Service:       service,
		Router:        router,
		scheduler:     scheduler,
		observability: obs,
		logger:        logger,
	}, nil
}

func newScheduler(ctx context.Context, cfg *config.Config, syncer competitionqueue.Syncer, logger *slog.Logger, obs observability.Observability) (competitionqueue.Scheduler, error) {
	switch kind := cfg.SchedulerKind(); kind {
	case "river":
		s, err := competitionqueue.NewRiverScheduler(ctx, cfg.Postgres.DSN, cfg.Sync.Interval, syncer, logger, obs.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create river scheduler: %w", err)
		}
		return s, nil
	case "gocron":
		s, err := competitionqueue.NewCronScheduler(cfg.Sync.Interval, 0, syncer, logger, obs.Metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown sync scheduler %q", kind)
	}
}

// Run starts the sync scheduler and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting competition module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.scheduler.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start sync scheduler", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.InfoContext(ctx, "Competition module goroutine stopped")
}

// Close stops the scheduler, waiting for a running sync.
func (m *Module) Close() error {
	m.logger.Info("Stopping competition module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.scheduler != nil {
		if err := m.scheduler.Stop(context.Background()); err != nil {
			m.logger.Error("Error stopping sync scheduler", "error", err)
			return fmt.Errorf("error stopping scheduler: %w", err)
		}
	}

	m.logger.Info("Competition module stopped")
	return nil
}
