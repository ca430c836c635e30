package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/meridianhq/meridian/internal/services/session Service

import "context"

// Service owns the session lifecycle: creation by party A, joining by
// party B, the compute pipeline, and voting.
type Service interface {
	// CreateSession starts a new session with party A's location fixed
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session with its venues and votes
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// JoinSession attaches party B's location using the join secret
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// Compute runs the midpoint pipeline and advances the session to
	// voting; degraded stages surface as warnings on the session
	Compute(ctx context.Context, input *ComputeInput) (*ComputeOutput, error)

	// CastVote records one party's venue choice and resolves the winner
	// once both votes are in
	CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error)

	// ListVenues returns the session's venues, best score first
	ListVenues(ctx context.Context, input *ListVenuesInput) (*ListVenuesOutput, error)
}
