package authjwt

import (
	"errors"
	"os"
	"testing"
	"time"

	competitiondomain "github.com/Black-And-White-Club/irock/app/modules/competition/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-at-least-32-chars-long!!"
	}
	p := NewProvider(secret)

	session := competitiondomain.Session{
		UserID:    42,
		Email:     "ana@example.com",
		Username:  "ana",
		FirstName: "Ana",
		IsActive:  true,
		Cup:       competitiondomain.CategoryIntermedio,
	}

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		provider    Provider
		expectedErr error
	}{
		{
			name: "success",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(session, time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(session, -time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
			expectedErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				tok, err := p.GenerateToken(session, time.Hour)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
				return tok
			},
			provider:    NewProvider("wrong-secret"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			token:       func(t *testing.T) string { return "not.a.jwt" },
			expectedErr: ErrInvalidToken,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    "someone-else",
						Subject:   "42",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString([]byte(secret))
				if err != nil {
					t.Fatalf("failed to sign: %v", err)
				}
				return tok
			},
			expectedErr: ErrInvalidToken,
		},
		{
			name: "non numeric subject",
			token: func(t *testing.T) string {
				tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    issuer,
						Subject:   "ana",
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					},
				}).SignedString([]byte(secret))
				if err != nil {
					t.Fatalf("failed to sign: %v", err)
				}
				return tok
			},
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validateTarget := p
			if tt.provider != nil {
				validateTarget = tt.provider
			}

			claims, err := validateTarget.ValidateToken(tt.token(t))

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if claims.Session != session {
				t.Errorf("expected session %+v, got %+v", session, claims.Session)
			}
			if claims.TokenID == uuid.Nil {
				t.Error("expected token id")
			}
			if !claims.ExpiresAt.After(claims.IssuedAt) {
				t.Errorf("expected expiry after issue, got %v <= %v", claims.ExpiresAt, claims.IssuedAt)
			}
		})
	}
}
