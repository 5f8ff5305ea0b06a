package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
)

// Service defines the authentication service interface.
type Service interface {
	// Login checks credentials against the backend and issues a session token.
	// No token is issued when the gate asks for the session to be cleared.
	Login(ctx context.Context, email, password string) (*LoginResponse, error)

	// ValidateToken validates a session token and returns the claims if valid.
	ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error)

	// Gate evaluates session against the schedule at the current time.
	Gate(ctx context.Context, session *competitiondomain.Session) competitiondomain.Decision

	// Preview evaluates an active participant of cup at a parsed time.
	Preview(ctx context.Context, cup competitiondomain.Category, at string) (*PreviewResponse, error)
}

// Authenticator is the part of the backend client used for login.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*competitionbackend.LoginResponse, error)
}

// LoginResponse is returned on a successful backend login.
type LoginResponse struct {
	Token     string                     `json:"token,omitempty"`
	ExpiresAt time.Time                  `json:"expires_at,omitzero"`
	Session   competitiondomain.Session  `json:"session"`
	Decision  competitiondomain.Decision `json:"decision"`
}

// PreviewResponse is the gate outcome for a synthetic session.
type PreviewResponse struct {
	At       time.Time                  `json:"at"`
	Cup      competitiondomain.Category `json:"cup"`
	Decision competitiondomain.Decision `json:"decision"`
}
