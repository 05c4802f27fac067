// Package common defines shared constants and sentinel errors used across
// the layers of the account service. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrEmailExists = errors.New("email already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential errors.
	ErrPasswordTooShort  = errors.New("password too short")
	ErrCorruptCredential = errors.New("stored credential is unreadable")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Access-control errors.
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	// Validation errors surfaced at the transport edge.
	ErrorValidation = errors.New("validation error")
)
