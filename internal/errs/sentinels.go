// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repository/service layers.
var (
	// ErrValidation indicates caller-supplied data violating a field constraint.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a uniqueness violation (email or nickname taken).
	ErrConflict = errors.New("already exists")

	// ErrUnauthenticated indicates a missing or unknown session token.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrSessionExpired indicates a recognized token past its lifetime.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates missing ownership or role for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
