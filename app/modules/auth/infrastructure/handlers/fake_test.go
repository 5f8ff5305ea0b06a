package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/irock/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/jwt"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	LoginFunc         func(ctx context.Context, email, password string) (*authservice.LoginResponse, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*authdomain.Claims, error)
	GateFunc          func(ctx context.Context, session *competitiondomain.Session) competitiondomain.Decision
	PreviewFunc       func(ctx context.Context, cup competitiondomain.Category, at string) (*authservice.PreviewResponse, error)
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return &authservice.LoginResponse{
		Token:    "fake-token",
		Decision: competitiondomain.Decision{State: competitiondomain.GateWithinWindow, Destination: competitiondomain.DestinationParticipantHome},
	}, nil
}

// ValidateToken accepts "staff" and "participant"; anything else is invalid.
func (f *FakeService) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, tokenString)
	}
	switch tokenString {
	case "staff":
		return &authdomain.Claims{Session: competitiondomain.Session{UserID: 1, IsStaff: true}}, nil
	case "participant":
		return &authdomain.Claims{Session: competitiondomain.Session{UserID: 4, IsActive: true, Cup: competitiondomain.CategoryKids}}, nil
	case "inactive":
		return &authdomain.Claims{Session: competitiondomain.Session{UserID: 5, Cup: competitiondomain.CategoryKids}}, nil
	case "":
		return nil, authservice.ErrMissingToken
	default:
		return nil, authjwt.ErrInvalidToken
	}
}

func (f *FakeService) Gate(ctx context.Context, session *competitiondomain.Session) competitiondomain.Decision {
	if f.GateFunc != nil {
		return f.GateFunc(ctx, session)
	}
	if session == nil {
		return competitiondomain.Decision{State: competitiondomain.GateUnauthenticated, Destination: competitiondomain.DestinationLogin}
	}
	return competitiondomain.Decision{State: competitiondomain.GateWithinWindow, Destination: competitiondomain.DestinationParticipantHome}
}

func (f *FakeService) Preview(ctx context.Context, cup competitiondomain.Category, at string) (*authservice.PreviewResponse, error) {
	if f.PreviewFunc != nil {
		return f.PreviewFunc(ctx, cup, at)
	}
	return &authservice.PreviewResponse{Cup: cup, Decision: competitiondomain.Decision{State: competitiondomain.GateBeforeWindow}}, nil
}

var _ authservice.Service = (*FakeService)(nil)
