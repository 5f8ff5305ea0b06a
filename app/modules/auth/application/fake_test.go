package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/jwt"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(session competitiondomain.Session, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Claims, error)
}

func (f *FakeJWTProvider) Trace() []string {
	return f.trace
}

func (f *FakeJWTProvider) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeJWTProvider) GenerateToken(session competitiondomain.Session, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(session, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Claims{
		Session: competitiondomain.Session{UserID: 4, IsActive: true, Cup: competitiondomain.CategoryKids},
	}, nil
}

// ------------------------
// Fake Authenticator
// ------------------------

type FakeAuthenticator struct {
	trace []string

	LoginFunc func(ctx context.Context, email, password string) (*competitionbackend.LoginResponse, error)
}

func (f *FakeAuthenticator) Trace() []string {
	return f.trace
}

func (f *FakeAuthenticator) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAuthenticator) Login(ctx context.Context, email, password string) (*competitionbackend.LoginResponse, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return &competitionbackend.LoginResponse{
		Token: "knox",
		Session: competitiondomain.Session{
			UserID:   4,
			Email:    email,
			IsActive: true,
			Cup:      competitiondomain.CategoryKids,
		},
	}, nil
}

var (
	_ authjwt.Provider = (*FakeJWTProvider)(nil)
	_ Authenticator    = (*FakeAuthenticator)(nil)
)
