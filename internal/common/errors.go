// Package common defines shared constants and sentinel errors used across
// the storefront client and the auth server. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")

	// Request validation errors.
	ErrMissingCredentials = errors.New("missing required fields")

	// Auth errors.
	ErrTokenRequired   = errors.New("access token required")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrSessionNotFound = errors.New("invalid or expired session")
	ErrForbidden       = errors.New("insufficient permissions")

	// Rate limiting.
	ErrTooManyAttempts = errors.New("too many attempts")
)
