package venue

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/meridianhq/meridian/internal/repositories/venue Repository

import (
	"context"

	"github.com/meridianhq/meridian/internal/models"
)

// Repository defines the interface for venue persistence. Venue rows
// are created by the session repository's compute transaction; this
// interface only reads them.
type Repository interface {
	// GetVenue retrieves a venue by ID
	GetVenue(ctx context.Context, input *GetVenueInput) (*models.Venue, error)

	// ListVenues retrieves all venues of a session, best score first
	ListVenues(ctx context.Context, input *ListVenuesInput) ([]*models.Venue, error)
}
