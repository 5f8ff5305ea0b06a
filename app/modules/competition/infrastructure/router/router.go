package competitionrouter

import (
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/irock/app/eventbus"
	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	competitionhandlers "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/handlers"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/go-chi/chi/v5"
)

// Router registers the competition HTTP routes and event handlers.
type Router struct {
	handlers  competitionhandlers.Handlers
	validator authhandlers.TokenValidator
	logger    *slog.Logger
}

// NewRouter creates a new competition router.
func NewRouter(handlers competitionhandlers.Handlers, validator authhandlers.TokenValidator, logger *slog.Logger) *Router {
	return &Router{
		handlers:  handlers,
		validator: validator,
		logger:    logger,
	}
}

// Mount adds the routes to r, which is expected to be the /api subrouter.
// Leaderboards are public; participant routes need a session; the rest is staff only.
func (rt *Router) Mount(r chi.Router) {
	h := rt.handlers

	r.Get("/leaderboards", h.HandleLeaderboards)
	r.Get("/leaderboards/{cup}", h.HandleLeaderboard)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireSession(rt.validator))

		r.Get("/participants/{id}/summary", h.HandleParticipantSummary)
		r.Get("/participants/{id}/available-blocks", h.HandleAvailableBlocks)
		r.Get("/participants/{id}/ascensions", h.HandleParticipantAscensions)

		r.Group(func(r chi.Router) {
			r.Use(authhandlers.RequireStaff)

			r.Get("/leaderboards.xlsx", h.HandleLeaderboardWorkbook)
			r.Get("/stats", h.HandleStats)
			r.Get("/stats/chart.png", h.HandleStatsChart)
			r.Get("/stats/categories/{cup}/grades", h.HandleGradeBreakdown)
			r.Get("/categories/{cup}/participants", h.HandleParticipantsByCategory)
			r.Post("/admin/sync", h.HandleSync)
		})
	})
}

// Configure subscribes the snapshot cache to refresh events.
func (rt *Router) Configure(router *message.Router, subscriber message.Subscriber) {
	router.AddMiddleware(
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(rt.logger),
		}.Middleware,
	)

	router.AddNoPublisherHandler(
		"competition.snapshot_refreshed",
		eventbus.SnapshotRefreshedTopic,
		subscriber,
		rt.handlers.HandleSnapshotRefreshed,
	)
}
