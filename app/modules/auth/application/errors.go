package authservice

import "errors"

var (
	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials is returned when the backend rejects the login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrGenerateToken is returned when token generation fails.
	ErrGenerateToken = errors.New("failed to generate token")

	// ErrInvalidPreviewTime is returned when a preview time cannot be parsed.
	ErrInvalidPreviewTime = errors.New("unrecognized time")
)
