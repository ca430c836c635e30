package midpoint

//go:generate mockgen -package=mocks -destination=mocks/mock_finder.go github.com/meridianhq/meridian/internal/services/midpoint Finder

import "context"

// Finder locates a travel-time-fair meeting point between two parties
type Finder interface {
	// FindFairMidpoint searches for a point with balanced travel times
	FindFairMidpoint(ctx context.Context, input *FindFairMidpointInput) (*FindFairMidpointOutput, error)
}
