package authjwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	authdomain "github.com/Black-And-White-Club/irock/app/modules/auth/domain"
	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "irock"

// sessionClaims represents the JWT claims structure. The subject is the
// backend user id.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email,omitempty"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	IsStaff     bool   `json:"is_staff,omitempty"`
	IsSuperuser bool   `json:"is_superuser,omitempty"`
	IsActive    bool   `json:"is_active,omitempty"`
	Cup         string `json:"cup,omitempty"`
}

// provider implements the Provider interface.
type provider struct {
	secret []byte
	now    func() time.Time
}

// NewProvider creates a new JWT provider.
func NewProvider(secret string) Provider {
	return &provider{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateToken creates a signed JWT token from the session.
func (p *provider) GenerateToken(session competitiondomain.Session, ttl time.Duration) (string, error) {
	now := p.now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(session.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:       session.Email,
		Username:    session.Username,
		FirstName:   session.FirstName,
		LastName:    session.LastName,
		IsStaff:     session.IsStaff,
		IsSuperuser: session.IsSuperuser,
		IsActive:    session.IsActive,
		Cup:         string(session.Cup),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT token and returns the domain claims if valid.
func (p *provider) ValidateToken(tokenString string) (*authdomain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return p.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(p.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	domainClaims := &authdomain.Claims{
		Session: competitiondomain.Session{
			UserID:      userID,
			Email:       claims.Email,
			Username:    claims.Username,
			FirstName:   claims.FirstName,
			LastName:    claims.LastName,
			IsStaff:     claims.IsStaff,
			IsSuperuser: claims.IsSuperuser,
			IsActive:    claims.IsActive,
			Cup:         competitiondomain.Category(claims.Cup),
		},
	}
	domainClaims.TokenID, _ = uuid.Parse(claims.ID)

	if claims.ExpiresAt != nil {
		domainClaims.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		domainClaims.IssuedAt = claims.IssuedAt.Time
	}

	return domainClaims, nil
}
