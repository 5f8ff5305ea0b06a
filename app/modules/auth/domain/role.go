package authdomain

import competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"

// Role represents a user's role for authorization purposes.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleStaff       Role = "staff"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleParticipant, RoleStaff:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// RoleFor maps staff and superuser accounts to RoleStaff.
func RoleFor(s competitiondomain.Session) Role {
	if s.IsStaff || s.IsSuperuser {
		return RoleStaff
	}
	return RoleParticipant
}
