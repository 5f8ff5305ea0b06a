package authservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/irock/app/modules/auth/infrastructure/jwt"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	competitionbackend "github.com/Black-And-White-Club/irock/app/modules/competition/infrastructure/backend"
	"github.com/Black-And-White-Club/irock/app/shared/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// Config holds the configuration for the auth service.
type Config struct {
	DefaultTTL time.Duration
	Schedule   competitiondomain.Schedule
	Location   *time.Location
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// service implements the Service interface.
type service struct {
	backend     Authenticator
	jwtProvider authjwt.Provider
	config      Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewService creates a new auth service.
func NewService(
	backend Authenticator,
	jwtProvider authjwt.Provider,
	config Config,
	logger *slog.Logger,
	tracer trace.Tracer,
) Service {
	if config.DefaultTTL == 0 {
		config.DefaultTTL = DefaultTokenTTL
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.Schedule == nil {
		config.Schedule = competitiondomain.DefaultSchedule(config.Location)
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &service{
		backend:     backend,
		jwtProvider: jwtProvider,
		config:      config,
		logger:      logger,
		tracer:      tracer,
	}
}

const DefaultTokenTTL = 12 * time.Hour

// Login proxies the credentials to the backend and issues a session token.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := s.backend.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, competitionbackend.ErrInvalidCredentials) {
			s.logger.InfoContext(ctx, "Login rejected by backend")
			return nil, ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Backend login failed", attr.Error(err))
		return nil, fmt.Errorf("backend login: %w", err)
	}

	session := resp.Session
	decision := s.Gate(ctx, &session)
	out := &LoginResponse{Session: session, Decision: decision}
	if !issuesToken(decision) {
		s.logger.WarnContext(ctx, "Login refused by gate",
			attr.ParticipantID(session.UserID),
			attr.String("cup", string(session.Cup)),
			attr.String("state", string(decision.State)),
		)
		return out, nil
	}

	token, err := s.jwtProvider.GenerateToken(session, s.config.DefaultTTL)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token",
			attr.Error(err),
			attr.ParticipantID(session.UserID),
		)
		return nil, fmt.Errorf("%w: %w", ErrGenerateToken, err)
	}
	out.Token = token
	out.ExpiresAt = s.config.Now().Add(s.config.DefaultTTL)

	s.logger.InfoContext(ctx, "User logged in",
		attr.ParticipantID(session.UserID),
		attr.String("role", authdomain.RoleFor(session).String()),
		attr.String("state", string(decision.State)),
	)
	return out, nil
}

// ValidateToken validates a session token and returns the claims if valid.
func (s *service) ValidateToken(ctx context.Context, tokenString string) (*authdomain.Claims, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.ValidateToken")
	defer span.End()

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.jwtProvider.ValidateToken(tokenString)
	if err != nil {
		s.logger.WarnContext(ctx, "Token validation failed",
			attr.Error(err),
		)
		return nil, err
	}

	s.logger.DebugContext(ctx, "Token validated successfully",
		attr.ParticipantID(claims.Session.UserID),
	)

	return claims, nil
}

// Gate evaluates session at the current time.
func (s *service) Gate(ctx context.Context, session *competitiondomain.Session) competitiondomain.Decision {
	decision := competitiondomain.DecideRedirect(session, s.config.Now().In(s.config.Location), s.config.Schedule)
	if decision.State == competitiondomain.GateUnknownCategory {
		s.logger.WarnContext(ctx, "Session has unknown category",
			attr.ParticipantID(session.UserID),
			attr.String("cup", string(session.Cup)),
		)
	}
	return decision
}

// Preview evaluates an active participant of cup at the parsed time.
func (s *service) Preview(ctx context.Context, cup competitiondomain.Category, at string) (*PreviewResponse, error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Preview")
	defer span.End()

	moment, err := ParseWhen(at, s.config.Now().In(s.config.Location))
	if err != nil {
		return nil, err
	}

	session := &competitiondomain.Session{IsActive: true, Cup: cup}
	decision := competitiondomain.DecideRedirect(session, moment, s.config.Schedule)

	s.logger.DebugContext(ctx, "Gate preview",
		attr.String("cup", string(cup)),
		attr.Time("at", moment),
		attr.String("state", string(decision.State)),
	)
	return &PreviewResponse{At: moment, Cup: cup, Decision: decision}, nil
}

// issuesToken reports whether a login with decision gets a session token.
// Inactive accounts and sessions the gate clears get none.
func issuesToken(decision competitiondomain.Decision) bool {
	return !decision.ClearSession && decision.State != competitiondomain.GateInactive
}
