package authdomain

import (
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/google/uuid"
)

// Claims is the content of a session token.
type Claims struct {
	TokenID   uuid.UUID
	Session   competitiondomain.Session
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// Role derives the authorization role from the session flags.
func (c *Claims) Role() Role {
	return RoleFor(c.Session)
}

// CanView reports whether the holder may read participant's data.
func (c *Claims) CanView(participantID int64) bool {
	return c.Role() == RoleStaff || c.Session.UserID == participantID
}
