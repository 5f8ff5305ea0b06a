package auth

import (
	"context"
	"log/slog"

	authservice "github.com/Black-And-White-Club/irock/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/jwt"
	authrouter "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/router"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
	"github.com/Black-And-White-Club/irock/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the auth module.
type Module struct {
	config        *config.Config
	observability observability.Observability
	service       authservice.Service
	handlers      authhandlers.Handlers
	router        *authrouter.Router
	logger        *slog.Logger
}

// NewModule creates the auth module and mounts its routes on apiRouter when
// one is given.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	backend authservice.Authenticator,
	apiRouter chi.Router,
) (*Module, error) {
	logger := obs.Logger.With("module", "auth")
	tracer := obs.Tracer

	logger.InfoContext(ctx, "Initializing auth module")

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	jwtProvider := authjwt.NewProvider(cfg.JWT.Secret)

	service := authservice.NewService(
		backend,
		jwtProvider,
		authservice.Config{
			DefaultTTL: cfg.JWT.DefaultTTL,
			Schedule:   cfg.Schedule(),
			Location:   loc,
		},
		logger,
		tracer,
	)

	handlers := authhandlers.NewAuthHandlers(service, logger, tracer)

	// Login gets a quarter of the API rate.
	limiter := authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit)/4, max(cfg.HTTP.RateBurst/4, 1))
	router := authrouter.NewRouter(handlers, service, limiter)
	if apiRouter != nil {
		router.Mount(apiRouter)
	}

	return &Module{
		config:        cfg,
		observability: obs,
		service:       service,
		handlers:      handlers,
		router:        router,
		logger:        logger,
	}, nil
}

// GetService returns the auth service for use by other modules.
func (m *Module) GetService() authservice.Service {
	return m.service
}
