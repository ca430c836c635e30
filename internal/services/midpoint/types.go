package midpoint

import (
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/routing"
)

// Config holds configuration for the midpoint finder
type Config struct {
	// Oracle answers travel-time queries
	Oracle routing.Oracle

	// MaxIterations bounds the bisection budget
	MaxIterations int

	// ConvergenceThreshold is the accepted relative imbalance between
	// the two travel times
	ConvergenceThreshold float64

	// DampingFactor scales the first bisection step; each later step
	// halves it
	DampingFactor float64
}

// FindFairMidpointInput contains the two party locations
type FindFairMidpointInput struct {
	LocationA models.LatLng
	LocationB models.LatLng

	// Mode is the travel mode for both parties
	Mode models.TravelMode
}

// FindFairMidpointOutput contains the candidate point and travel times
type FindFairMidpointOutput struct {
	// Midpoint is the candidate meeting point
	Midpoint models.LatLng

	// TravelTimeA/B are seconds to the midpoint, nil when the oracle
	// could not answer
	TravelTimeA *int
	TravelTimeB *int

	// Warning is set when the search ended without balancing the times
	Warning *string
}
