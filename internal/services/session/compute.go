package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/meridianhq/meridian/internal/enrichment"
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/places"
	sessionRepo "github.com/meridianhq/meridian/internal/repositories/session"
	"github.com/meridianhq/meridian/internal/services/discovery"
	"github.com/meridianhq/meridian/internal/services/midpoint"
)

// Warnings surfaced on the session when a pipeline stage degrades
const (
	warningGeographicFallback = "Could not compute public transport times. Using geographic midpoint."
	warningDiscoveryFailed    = "Venue search failed. No venues are available."
)

const maxCachedReviews = 5

// Compute runs the midpoint pipeline: fair midpoint, venue discovery,
// enrichment, and one atomic persistence of session plus venues. Stage
// failures degrade individual fields and the run still reaches voting;
// only a persistence failure or an unexpected error regresses the
// session to ready_to_compute for a clean retry.
func (s *service) Compute(ctx context.Context, input *ComputeInput) (*ComputeOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sess, err := s.getActiveSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != models.SessionStatusReadyToCompute {
		return nil, ErrInvalidState
	}

	locB, ok := sess.LocationB()
	if !ok {
		return nil, ErrInvalidState
	}

	// Commit the computing status before any external call, so a crash
	// mid-pipeline is observable instead of silently re-entrant. The
	// guarded transition also rejects a concurrent second compute.
	err = s.sessionRepo.TransitionStatus(ctx, &sessionRepo.TransitionStatusInput{
		SessionID: sess.ID,
		From:      models.SessionStatusReadyToCompute,
		To:        models.SessionStatusComputing,
		UpdatedAt: s.clock.Now().Unix(),
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrStatusConflict) {
			return nil, ErrInvalidState
		}
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to transition session: %w", err)
	}

	if err := s.runPipeline(ctx, sess, locB); err != nil {
		s.regress(ctx, sess.ID)
		return nil, fmt.Errorf("%w: %v", ErrComputeFailed, err)
	}

	return &ComputeOutput{}, nil
}

func (s *service) runPipeline(ctx context.Context, sess *models.Session, locB models.LatLng) error {
	locA := sess.LocationA()

	var warnings []string

	// Stage 1: fair midpoint, falling back to the geographic midpoint
	// when the oracle is unusable in both directions
	center := models.GeographicMidpoint(locA, locB)
	var travelTimeA, travelTimeB *int

	mp, err := s.finder.FindFairMidpoint(ctx, &midpoint.FindFairMidpointInput{
		LocationA: locA,
		LocationB: locB,
		Mode:      sess.TravelMode,
	})
	if err != nil {
		log.Printf("midpoint search failed for session %s, using geographic fallback: %v", sess.ID, err)
		warnings = append(warnings, warningGeographicFallback)
	} else {
		center = mp.Midpoint
		travelTimeA = mp.TravelTimeA
		travelTimeB = mp.TravelTimeB
		if mp.Warning != nil {
			warnings = append(warnings, *mp.Warning)
		}
	}

	// Stage 2: venue discovery; a hard provider error degrades to an
	// empty venue list rather than aborting
	var scored []*discovery.ScoredVenue
	found, err := s.discovery.DiscoverVenues(ctx, &discovery.DiscoverVenuesInput{
		Center: center,
	})
	if err != nil {
		log.Printf("venue discovery failed for session %s: %v", sess.ID, err)
		warnings = append(warnings, warningDiscoveryFailed)
	} else {
		scored = found.Venues
	}

	// Stages 3+4: descriptive tags and review insights are independent
	// capabilities and run concurrently; either may fail on its own
	tags, insights := s.enrich(ctx, sess.ID, scored)

	venues := s.buildVenues(sess.ID, scored, tags, insights)

	sess.Status = models.SessionStatusVoting
	sess.MidpointLat = &center.Lat
	sess.MidpointLng = &center.Lng
	sess.UserATravelTime = travelTimeA
	sess.UserBTravelTime = travelTimeB
	sess.Warning = nil
	if len(warnings) > 0 {
		joined := strings.Join(warnings, "; ")
		sess.Warning = &joined
	}
	sess.UpdatedAt = s.clock.Now().Unix()

	err = s.sessionRepo.SaveComputeResult(ctx, &sessionRepo.SaveComputeResultInput{
		Session: sess,
		Venues:  venues,
	})
	if err != nil {
		return fmt.Errorf("failed to save compute result: %w", err)
	}

	return nil
}

func (s *service) enrich(ctx context.Context, sessionID string, scored []*discovery.ScoredVenue) (map[string]*enrichment.DescriptiveTags, map[string]*enrichment.ReviewInsights) {
	if s.enrichment == nil || len(scored) == 0 {
		return nil, nil
	}

	facts := make([]*places.VenueFact, 0, len(scored))
	for _, sv := range scored {
		facts = append(facts, sv.VenueFact)
	}

	var (
		wg       sync.WaitGroup
		tags     map[string]*enrichment.DescriptiveTags
		insights map[string]*enrichment.ReviewInsights
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		out, err := s.enrichment.Describe(ctx, &enrichment.DescribeInput{
			Venues: facts,
		})
		if err != nil {
			log.Printf("venue enrichment failed for session %s: %v", sessionID, err)
			return
		}
		tags = out.Tags
	}()

	go func() {
		defer wg.Done()

		out, err := s.enrichment.AnalyzeReviews(ctx, &enrichment.AnalyzeReviewsInput{
			Venues: facts,
		})
		if err != nil {
			log.Printf("review analysis failed for session %s: %v", sessionID, err)
			return
		}
		insights = out.Insights
	}()

	wg.Wait()

	return tags, insights
}

// buildVenues turns ranked venue facts into persistable rows, merging
// in whatever enrichment results arrived. Each map merges independently
// so a venue may carry review insights without descriptive tags.
func (s *service) buildVenues(sessionID string, scored []*discovery.ScoredVenue, tags map[string]*enrichment.DescriptiveTags, insights map[string]*enrichment.ReviewInsights) []*models.Venue {
	venues := make([]*models.Venue, 0, len(scored))

	for _, sv := range scored {
		fact := sv.VenueFact

		v := &models.Venue{
			ID:               s.uuid.NewUUID(),
			SessionID:        sessionID,
			PlaceID:          fact.PlaceID,
			Name:             fact.Name,
			Address:          optional(fact.Address),
			Lat:              fact.Location.Lat,
			Lng:              fact.Location.Lng,
			Rating:           fact.Rating,
			UserRatingCount:  fact.UserRatingCount,
			Score:            sv.Score,
			PriceLevel:       optional(fact.PriceLevel),
			MapsURI:          optional(fact.MapsURI),
			Types:            asJSON(fact.Types),
			EditorialSummary: optional(fact.EditorialSummary),
		}

		if reviews := fact.Reviews; len(reviews) > 0 {
			if len(reviews) > maxCachedReviews {
				reviews = reviews[:maxCachedReviews]
			}
			v.RawReviewsCache = asJSON(reviews)
		}

		if t := tags[fact.Name]; t != nil {
			v.Description = optional(t.Description)
			v.CuisineTags = asJSON(t.CuisineTags)
			v.VibeTags = asJSON(t.VibeTags)
			v.BestFor = asJSON(t.BestFor)
			v.SignatureDish = optional(t.SignatureDish)
		}

		if ri := insights[fact.Name]; ri != nil {
			v.ReviewSentiment = asJSON(ri.Sentiment)
			v.StandoutDishes = asJSON(ri.StandoutDishes)
			v.ReviewSummary = optional(ri.ReviewSummary)
			v.ReviewHighlights = asJSON(ri.Highlights)
		}

		venues = append(venues, v)
	}

	return venues
}

// regress returns the session to ready_to_compute after a total
// pipeline failure so the client can retry compute cleanly
func (s *service) regress(ctx context.Context, sessionID string) {
	err := s.sessionRepo.TransitionStatus(ctx, &sessionRepo.TransitionStatusInput{
		SessionID: sessionID,
		From:      models.SessionStatusComputing,
		To:        models.SessionStatusReadyToCompute,
		UpdatedAt: s.clock.Now().Unix(),
	})
	if err != nil {
		log.Printf("failed to reset session %s after pipeline failure: %v", sessionID, err)
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// asJSON encodes a slice or map column, nil when there is nothing to store
func asJSON(v any) *string {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	encoded := string(b)
	if encoded == "null" || encoded == "[]" || encoded == "{}" {
		return nil
	}
	return &encoded
}
