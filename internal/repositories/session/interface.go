package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/meridianhq/meridian/internal/repositories/session Repository

import (
	"context"

	"github.com/meridianhq/meridian/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// SaveSession persists a session, creating or updating it
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// TransitionStatus moves a session between statuses only when it is
	// still in the expected one; the guard makes compute idempotent
	TransitionStatus(ctx context.Context, input *TransitionStatusInput) error

	// SaveComputeResult writes the session's pipeline results and all
	// discovered venues in a single transaction
	SaveComputeResult(ctx context.Context, input *SaveComputeResultInput) error
}
