package authjwt

import "errors"

var (
	// ErrInvalidToken is returned for malformed tokens and tokens from another issuer.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidSignature is returned when the token was not signed with our secret.
	ErrInvalidSignature = errors.New("invalid token signature")
)
