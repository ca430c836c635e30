package vote

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/meridianhq/meridian/internal/repositories/vote Repository

import (
	"context"

	"github.com/meridianhq/meridian/internal/models"
)

// Repository defines the interface for vote persistence
type Repository interface {
	// SaveVote persists a vote; a second vote by the same voter in the
	// same session fails with ErrDuplicateVote
	SaveVote(ctx context.Context, input *SaveVoteInput) error

	// ListVotes retrieves all votes of a session
	ListVotes(ctx context.Context, input *ListVotesInput) ([]*models.Vote, error)
}
