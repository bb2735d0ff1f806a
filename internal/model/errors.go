package model

import "errors"

// Sentinel errors shared by all domain services. Handlers map them to HTTP
// status codes in one place (httpapi.WriteServiceError).
var (
	// ErrNotFound is returned when a record is missing.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the caller is not the owner/author of the
	// record being mutated.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized is returned on bad or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
