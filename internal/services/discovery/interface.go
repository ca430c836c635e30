package discovery

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/meridianhq/meridian/internal/services/discovery Service

import "context"

// Service runs the expanding-radius, quality-relaxing venue search
type Service interface {
	// DiscoverVenues returns ranked venues around the center point
	DiscoverVenues(ctx context.Context, input *DiscoverVenuesInput) (*DiscoverVenuesOutput, error)
}
