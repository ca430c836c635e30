package session

import "github.com/meridianhq/meridian/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type TransitionStatusInput struct {
	SessionID string

	// From guards the transition; it fails unless the stored status
	// still matches
	From models.SessionStatus
	To   models.SessionStatus

	// UpdatedAt is seconds since epoch
	UpdatedAt int64
}

type SaveComputeResultInput struct {
	Session *models.Session
	Venues  []*models.Venue
}
