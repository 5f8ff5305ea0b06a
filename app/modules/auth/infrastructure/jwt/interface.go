package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
)

// Provider defines the interface for session token operations.
type Provider interface {
	// GenerateToken creates a signed token carrying the session.
	GenerateToken(session competitiondomain.Session, ttl time.Duration) (string, error)

	// ValidateToken validates a token and returns the claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
