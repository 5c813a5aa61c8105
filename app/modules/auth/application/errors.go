package authservice

import "errors"

var (
	// ErrInvalidToken is returned when the session token is invalid.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned when the session token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken is returned when no token is provided.
	ErrMissingToken = errors.New("missing authentication token")

	// ErrLoginDisabled is returned when no Google client is configured.
	ErrLoginDisabled = errors.New("google login is not configured")

	// ErrMissingCode is returned when the OAuth callback carries no code.
	ErrMissingCode = errors.New("missing authorization code")

	// ErrGenerateToken is returned when session signing fails.
	ErrGenerateToken = errors.New("failed to generate token")
)
