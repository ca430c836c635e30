package session

import "errors"

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrStatusConflict is returned when a guarded transition finds the
	// session in a different status than expected
	ErrStatusConflict = errors.New("session status conflict")
)
