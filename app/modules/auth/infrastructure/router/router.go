package authrouter

import (
	authhandlers "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

const (
	LoginPath   = "/auth/login"
	GatePath    = "/auth/gate"
	PreviewPath = "/admin/gate/preview"
)

// Router registers the auth HTTP routes.
type Router struct {
	handlers  authhandlers.Handlers
	validator authhandlers.TokenValidator
	limiter   *authhandlers.IPRateLimiter
}

// NewRouter creates a new auth router. Login is rate limited by limiter.
func NewRouter(handlers authhandlers.Handlers, validator authhandlers.TokenValidator, limiter *authhandlers.IPRateLimiter) *Router {
	return &Router{
		handlers:  handlers,
		validator: validator,
		limiter:   limiter,
	}
}

// Mount adds the routes to r, which is expected to be the /api subrouter.
func (rt *Router) Mount(r chi.Router) {
	r.With(authhandlers.RateLimitMiddleware(rt.limiter)).Post(LoginPath, rt.handlers.HandleLogin)
	r.With(authhandlers.OptionalSession(rt.validator)).Get(GatePath, rt.handlers.HandleGate)
	r.With(authhandlers.RequireSession(rt.validator), authhandlers.RequireStaff).Get(PreviewPath, rt.handlers.HandlePreview)
}
