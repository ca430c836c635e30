package discovery

import (
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/places"
)

// Config holds configuration for the discovery ladder
type Config struct {
	// Places is the venue search provider
	Places places.Client

	// InitialRadiusMeters is the first search circle
	InitialRadiusMeters float64

	// MaxRadiusMeters caps the ladder
	MaxRadiusMeters float64

	// RadiusMultiplier widens the circle between rungs
	RadiusMultiplier float64

	// MinVenues is how many venues must pass the filter before the
	// ladder stops widening
	MinVenues int

	// MaxVenues truncates the ranked result
	MaxVenues int

	// Strict quality filter
	MinRating  float64
	MinReviews int

	// Relaxed quality filter for the final rung
	RelaxedMinRating  float64
	RelaxedMinReviews int

	// Categories restricts the venue types searched
	Categories []string
}

// DiscoverVenuesInput contains the search center
type DiscoverVenuesInput struct {
	Center models.LatLng
}

// DiscoverVenuesOutput contains ranked venues, best first
type DiscoverVenuesOutput struct {
	Venues []*ScoredVenue
}

// ScoredVenue is a venue fact with its ranking score
type ScoredVenue struct {
	*places.VenueFact

	// Score is rating x log10(max(rating count, 1))
	Score float64
}
