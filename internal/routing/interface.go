package routing

//go:generate mockgen -package=mocks -destination=mocks/mock_oracle.go github.com/meridianhq/meridian/internal/routing Oracle

import "context"

// Oracle answers travel-time queries between two points. Implementations
// hold no per-query state and must be safe for concurrent use. Retry
// policy belongs to callers, not here.
type Oracle interface {
	// Query returns the travel time for one origin/destination pair
	Query(ctx context.Context, input *QueryInput) (*QueryOutput, error)
}
