package app

import (
	"net/http"

	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/irock/app/shared/observability"
	"github.com/Black-And-White-Club/irock/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// newRouter builds the root router with the middleware shared by every
// route. Module routes are mounted under /api.
func newRouter(cfg *config.Config, obs observability.Observability) chi.Router {
	r := chi.NewRouter()

	limiter := authhandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)

	r.Use(authhandlers.RequestIDMiddleware)
	r.Use(authhandlers.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	r.Use(authhandlers.RateLimitMiddleware(limiter))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
