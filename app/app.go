package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	"github.com/Black-And-White-Club/irock/app/modules/auth"
	"github.com/Black-And-White-Club/irock/app/modules/competition"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"github.com/Black-And-White-Club/irock/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// App holds the shared resources and the modules built on them.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Logger        *slog.Logger

	DB            *bun.DB
	EventBus      eventbus.Publisher
	MessageRouter *message.Router
	Subscriber    message.Subscriber
	Router        chi.Router

	AuthModule        *auth.Module
	CompetitionModule *competition.Module

	wg sync.WaitGroup
}

// NewApp builds every module from cfg. Postgres and NATS are optional: without
// a DSN snapshots are only cached in memory, and without a NATS URL events
// are logged instead of published.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	app := &App{
		Config:        cfg,
		Observability: obs,
		Logger:        obs.Logger,
	}

	if err := app.initialize(ctx); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context) error {
	cfg := app.Config

	if cfg.Postgres.DSN != "" {
		pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
		app.DB = bun.NewDB(pgdb, pgdialect.New())
		app.DB.AddQueryHook(newQueryHook(app.Logger))
		if err := app.DB.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
	}

	if cfg.NATS.URL != "" {
		bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, app.Logger)
		if err != nil {
			return err
		}
		app.EventBus = bus

		sub, err := eventbus.NewSubscriber(cfg.NATS.URL, app.Logger)
		if err != nil {
			return err
		}
		app.Subscriber = sub

		router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(app.Logger))
		if err != nil {
			return fmt.Errorf("failed to create message router: %w", err)
		}
		app.MessageRouter = router
	} else {
		app.EventBus = eventbus.NoopPublisher{Logger: app.Logger}
	}

	backend, err := competitionbackend.NewHTTPClient(
		cfg.Backend.BaseURL,
		cfg.Backend.Token,
		cfg.Backend.Timeout,
		app.Logger,
		app.Observability.Tracer,
	)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}

	app.Router = newRouter(cfg, app.Observability)

	var authModule *auth.Module
	var competitionModule *competition.Module
	app.Router.Route("/api", func(r chi.Router) {
		authModule, err = auth.NewModule(ctx, cfg, app.Observability, backend, r)
		if err != nil {
			err = fmt.Errorf("failed to initialize auth module: %w", err)
			return
		}
		competitionModule, err = competition.NewModule(ctx, cfg, app.Observability, competition.Dependencies{
			DB:            app.DB,
			Backend:       backend,
			Publisher:     app.EventBus,
			Validator:     authModule.GetService(),
			Router:        r,
			MessageRouter: app.MessageRouter,
			Subscriber:    app.Subscriber,
		})
		if err != nil {
			err = fmt.Errorf("failed to initialize competition module: %w", err)
		}
	})
	if err != nil {
		return err
	}
	app.AuthModule = authModule
	app.CompetitionModule = competitionModule

	app.Logger.InfoContext(ctx, "Application initialized",
		attr.String("scheduler", cfg.SchedulerKind()),
		attr.Bool("persistence", app.DB != nil),
		attr.Bool("events", app.MessageRouter != nil),
	)
	return nil
}

// Close releases the modules and connections in reverse order of creation.
func (app *App) Close() {
	if app.CompetitionModule != nil {
		if err := app.CompetitionModule.Close(); err != nil {
			app.Logger.Error("Error closing competition module", attr.Error(err))
		}
	}

	app.wg.Wait()

	if app.MessageRouter != nil {
		if err := app.MessageRouter.Close(); err != nil {
			app.Logger.Error("Error closing message router", attr.Error(err))
		}
	}
	if app.Subscriber != nil {
		if err := app.Subscriber.Close(); err != nil {
			app.Logger.Error("Error closing subscriber", attr.Error(err))
		}
	}
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			app.Logger.Error("Error closing event bus", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Error closing database", attr.Error(err))
		}
	}
}
