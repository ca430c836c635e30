package midpoint

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/routing"
)

const (
	defaultMaxIterations        = 3
	defaultConvergenceThreshold = 0.1
	defaultDampingFactor        = 0.3

	// WarningCouldNotBalance is attached when the bisection budget ran
	// out or the oracle stopped answering mid-search
	WarningCouldNotBalance = "could not balance travel times"
)

// service implements the Finder interface
type service struct {
	config *Config
	oracle routing.Oracle
}

// New creates a new midpoint finder
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Oracle == nil {
		return nil, ErrNilOracle
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}

	if cfg.ConvergenceThreshold <= 0 {
		cfg.ConvergenceThreshold = defaultConvergenceThreshold
	}

	if cfg.DampingFactor <= 0 {
		cfg.DampingFactor = defaultDampingFactor
	}

	return &service{
		config: cfg,
		oracle: cfg.Oracle,
	}, nil
}

// FindFairMidpoint searches for a point with balanced travel times.
// The seed is the geographic midpoint; each bisection step nudges the
// candidate toward whichever party has the shorter travel time, since
// that party can afford to travel further.
func (s *service) FindFairMidpoint(ctx context.Context, input *FindFairMidpointInput) (*FindFairMidpointOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	candidate := models.GeographicMidpoint(input.LocationA, input.LocationB)

	timeA, timeB, err := s.queryBoth(ctx, input, candidate)
	if err != nil {
		return nil, err
	}
	if timeA == nil || timeB == nil {
		// One direction failed; balancing is off the table, but the
		// geographic seed is still a usable meeting point
		warning := WarningCouldNotBalance
		return &FindFairMidpointOutput{
			Midpoint: candidate,
			Warning:  &warning,
		}, nil
	}

	step := s.config.DampingFactor

	for i := 0; i < s.config.MaxIterations; i++ {
		if s.balanced(*timeA, *timeB) {
			return &FindFairMidpointOutput{
				Midpoint:    candidate,
				TravelTimeA: timeA,
				TravelTimeB: timeB,
			}, nil
		}

		target := input.LocationA
		if *timeB < *timeA {
			target = input.LocationB
		}

		next := models.LatLng{
			Lat: candidate.Lat + step*(target.Lat-candidate.Lat),
			Lng: candidate.Lng + step*(target.Lng-candidate.Lng),
		}

		nextA, nextB, err := s.queryBoth(ctx, input, next)
		if err != nil || nextA == nil || nextB == nil {
			// Oracle stopped answering mid-search; the previous
			// candidate and times are still valid
			log.Printf("midpoint bisection step %d lost the oracle, keeping last candidate", i+1)
			warning := WarningCouldNotBalance
			return &FindFairMidpointOutput{
				Midpoint:    candidate,
				TravelTimeA: timeA,
				TravelTimeB: timeB,
				Warning:     &warning,
			}, nil
		}

		candidate = next
		timeA = nextA
		timeB = nextB
		step *= 0.5
	}

	if s.balanced(*timeA, *timeB) {
		return &FindFairMidpointOutput{
			Midpoint:    candidate,
			TravelTimeA: timeA,
			TravelTimeB: timeB,
		}, nil
	}

	// Budget exhausted; an asymmetric outcome beats no outcome
	warning := WarningCouldNotBalance
	return &FindFairMidpointOutput{
		Midpoint:    candidate,
		TravelTimeA: timeA,
		TravelTimeB: timeB,
		Warning:     &warning,
	}, nil
}

// queryBoth asks the oracle for both directions. A nil int with nil
// error means that direction failed individually; an error means both
// directions failed.
func (s *service) queryBoth(ctx context.Context, input *FindFairMidpointInput, candidate models.LatLng) (*int, *int, error) {
	timeA, errA := s.query(ctx, input.LocationA, candidate, input.Mode)
	timeB, errB := s.query(ctx, input.LocationB, candidate, input.Mode)

	if errA != nil && errB != nil {
		return nil, nil, ErrMidpointUnavailable
	}

	return timeA, timeB, nil
}

func (s *service) query(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (*int, error) {
	output, err := s.oracle.Query(ctx, &routing.QueryInput{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
	})
	if err != nil {
		return nil, err
	}

	return &output.DurationSeconds, nil
}

// balanced reports whether the relative imbalance is within the
// configured tolerance
func (s *service) balanced(timeA, timeB int) bool {
	longest := math.Max(float64(timeA), float64(timeB))
	if longest == 0 {
		return true
	}

	imbalance := math.Abs(float64(timeA)-float64(timeB)) / longest
	return imbalance < s.config.ConvergenceThreshold
}
