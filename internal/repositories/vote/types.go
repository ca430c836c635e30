package vote

import "github.com/meridianhq/meridian/internal/models"

type SaveVoteInput struct {
	Vote *models.Vote
}

type ListVotesInput struct {
	SessionID string
}
