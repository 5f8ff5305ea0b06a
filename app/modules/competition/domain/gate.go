package competitiondomain

import (
	"errors"
	"time"
)

// ErrUnknownCategory is returned when a session carries a category with no
// competition window.
var ErrUnknownCategory = errors.New("categoría de usuario no válida. Contacta al administrador")

// UnknownCategoryNotice is the message shown to the user on an unknown category.
const UnknownCategoryNotice = "Categoría de usuario no válida. Contacta al administrador."

// Session is the authenticated user as seen by the access gate.
type Session struct {
	UserID      int64    `json:"user_id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	IsStaff     bool     `json:"is_staff"`
	IsSuperuser bool     `json:"is_superuser"`
	IsActive    bool     `json:"is_active"`
	Cup         Category `json:"cup"`
}

// Window is the competition time range shared by one or more categories.
type Window struct {
	Categories []Category `yaml:"categories" json:"categories"`
	Start      time.Time  `yaml:"start" json:"start"`
	End        time.Time  `yaml:"end" json:"end"`
}

// Schedule lists the competition windows.
type Schedule []Window

// WindowFor returns the window that contains category.
func (s Schedule) WindowFor(category Category) (Window, bool) {
	for _, w := range s {
		for _, c := range w.Categories {
			if c == category {
				return w, true
			}
		}
	}
	return Window{}, false
}

// DefaultSchedule returns the 2025-12-06 event windows in loc.
func DefaultSchedule(loc *time.Location) Schedule {
	if loc == nil {
		loc = time.Local
	}
	at := func(hour int) time.Time {
		return time.Date(2025, time.December, 6, hour, 0, 0, 0, loc)
	}
	return Schedule{
		{Categories: []Category{CategoryKids}, Start: at(9), End: at(13)},
		{Categories: []Category{CategoryPrincipiante}, Start: at(9), End: at(17)},
		{Categories: []Category{CategoryIntermedio, CategoryAvanzado}, Start: at(11), End: at(19)},
	}
}

// GateState is the outcome of evaluating a session against the schedule.
type GateState string

const (
	GateUnauthenticated GateState = "unauthenticated"
	GateStaffBypass     GateState = "staff_bypass"
	GateInactive        GateState = "inactive"
	GateBeforeWindow    GateState = "before_window"
	GateWithinWindow    GateState = "within_window"
	GateAfterWindow     GateState = "after_window"
	GateUnknownCategory GateState = "unknown_category"
)

// Destinations for each gate state.
const (
	DestinationLogin            = "/login"
	DestinationAdminHome        = "/admin"
	DestinationInactive         = "/inactive"
	DestinationCountdown        = "/inactive-date"
	DestinationParticipantHome  = "/participant"
	DestinationCompetitionEnded = "/competition-ended"
)

// Decision is where a session should be sent.
type Decision struct {
	State        GateState `json:"state"`
	Destination  string    `json:"destination"`
	ClearSession bool      `json:"clear_session,omitempty"`
	Notice       string    `json:"notice,omitempty"`
	Window       *Window   `json:"window,omitempty"`
}

// Err returns ErrUnknownCategory for the unknown category state and nil otherwise.
func (d Decision) Err() error {
	if d.State == GateUnknownCategory {
		return ErrUnknownCategory
	}
	return nil
}

// DecideRedirect evaluates session at now. A nil session is unauthenticated.
// Staff and superusers bypass every other check. Window bounds are inclusive.
func DecideRedirect(session *Session, now time.Time, schedule Schedule) Decision {
	if session == nil {
		return Decision{State: GateUnauthenticated, Destination: DestinationLogin}
	}
	if session.IsStaff || session.IsSuperuser {
		return Decision{State: GateStaffBypass, Destination: DestinationAdminHome}
	}
	if !session.IsActive {
		return Decision{State: GateInactive, Destination: DestinationInactive}
	}

	window, ok := schedule.WindowFor(session.Cup)
	if !ok {
		return Decision{
			State:        GateUnknownCategory,
			Destination:  DestinationLogin,
			ClearSession: true,
			Notice:       UnknownCategoryNotice,
		}
	}

	switch {
	case now.Before(window.Start):
		return Decision{State: GateBeforeWindow, Destination: DestinationCountdown, Window: &window}
	case now.After(window.End):
		return Decision{State: GateAfterWindow, Destination: DestinationCompetitionEnded, Window: &window}
	default:
		return Decision{State: GateWithinWindow, Destination: DestinationParticipantHome, Window: &window}
	}
}
