package discovery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/meridianhq/meridian/internal/places"
)

const (
	defaultInitialRadius     = 800
	defaultMaxRadius         = 3000
	defaultRadiusMultiplier  = 1.5
	defaultMinVenues         = 5
	defaultMaxVenues         = 8
	defaultMinRating         = 4.0
	defaultMinReviews        = 50
	defaultRelaxedMinRating  = 3.8
	defaultRelaxedMinReviews = 30
)

var defaultCategories = []string{"restaurant", "cafe"}

// service implements the Service interface
type service struct {
	config *Config
	places places.Client
}

// New creates a new discovery service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Places == nil {
		return nil, ErrNilPlacesClient
	}

	if cfg.InitialRadiusMeters <= 0 {
		cfg.InitialRadiusMeters = defaultInitialRadius
	}
	if cfg.MaxRadiusMeters <= 0 {
		cfg.MaxRadiusMeters = defaultMaxRadius
	}
	if cfg.RadiusMultiplier <= 1 {
		cfg.RadiusMultiplier = defaultRadiusMultiplier
	}
	if cfg.MinVenues <= 0 {
		cfg.MinVenues = defaultMinVenues
	}
	if cfg.MaxVenues <= 0 {
		cfg.MaxVenues = defaultMaxVenues
	}
	if cfg.MinRating <= 0 {
		cfg.MinRating = defaultMinRating
	}
	if cfg.MinReviews <= 0 {
		cfg.MinReviews = defaultMinReviews
	}
	if cfg.RelaxedMinRating <= 0 {
		cfg.RelaxedMinRating = defaultRelaxedMinRating
	}
	if cfg.RelaxedMinReviews <= 0 {
		cfg.RelaxedMinReviews = defaultRelaxedMinReviews
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = defaultCategories
	}

	return &service{
		config: cfg,
		places: cfg.Places,
	}, nil
}

// DiscoverVenues climbs the radius ladder until enough venues pass the
// strict filter, then falls back to one relaxed search at the maximum
// radius. Sparse inventory degrades toward fewer results, never to a
// hard failure.
func (s *service) DiscoverVenues(ctx context.Context, input *DiscoverVenuesInput) (*DiscoverVenuesOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	radius := s.config.InitialRadiusMeters
	var filtered []*places.VenueFact

	for radius <= s.config.MaxRadiusMeters {
		raw, err := s.search(ctx, input, radius)
		if err != nil {
			return nil, err
		}

		filtered = filterVenues(raw, s.config.MinRating, s.config.MinReviews)
		if len(filtered) >= s.config.MinVenues {
			break
		}

		radius = math.Round(radius * s.config.RadiusMultiplier)
	}

	if len(filtered) < s.config.MinVenues {
		raw, err := s.search(ctx, input, s.config.MaxRadiusMeters)
		if err != nil {
			return nil, err
		}

		filtered = filterVenues(raw, s.config.RelaxedMinRating, s.config.RelaxedMinReviews)
	}

	ranked := rank(filtered)
	if len(ranked) > s.config.MaxVenues {
		ranked = ranked[:s.config.MaxVenues]
	}

	return &DiscoverVenuesOutput{Venues: ranked}, nil
}

func (s *service) search(ctx context.Context, input *DiscoverVenuesInput, radius float64) ([]*places.VenueFact, error) {
	output, err := s.places.Search(ctx, &places.SearchInput{
		Center:       input.Center,
		RadiusMeters: radius,
		Categories:   s.config.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscoveryFailed, err)
	}

	return output.Venues, nil
}

func filterVenues(venues []*places.VenueFact, minRating float64, minReviews int) []*places.VenueFact {
	var passed []*places.VenueFact
	for _, venue := range venues {
		if venue.Rating >= minRating && venue.UserRatingCount >= minReviews {
			passed = append(passed, venue)
		}
	}
	return passed
}

// rank scores and sorts venues best first. The score rewards both
// quality and review-volume credibility, so a 5-star single-review
// venue cannot outrank an established 4.5-star one.
func rank(venues []*places.VenueFact) []*ScoredVenue {
	scored := make([]*ScoredVenue, 0, len(venues))
	for _, venue := range venues {
		scored = append(scored, &ScoredVenue{
			VenueFact: venue,
			Score:     Score(venue.Rating, venue.UserRatingCount),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// Score is rating x log10(max(count, 1)).
func Score(rating float64, ratingCount int) float64 {
	count := ratingCount
	if count < 1 {
		count = 1
	}
	return rating * math.Log10(float64(count))
}
