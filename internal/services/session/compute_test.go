package session

import (
	"context"
	"errors"
	"testing"
	"time"

	clockmocks "github.com/meridianhq/meridian/internal/common/clock/mocks"
	"github.com/meridianhq/meridian/internal/common/pin"
	uuidmocks "github.com/meridianhq/meridian/internal/common/uuid/mocks"
	"github.com/meridianhq/meridian/internal/enrichment"
	enrichmentmocks "github.com/meridianhq/meridian/internal/enrichment/mocks"
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/places"
	sessionRepo "github.com/meridianhq/meridian/internal/repositories/session"
	sessionrepomocks "github.com/meridianhq/meridian/internal/repositories/session/mocks"
	venuerepomocks "github.com/meridianhq/meridian/internal/repositories/venue/mocks"
	voterepomocks "github.com/meridianhq/meridian/internal/repositories/vote/mocks"
	"github.com/meridianhq/meridian/internal/services/discovery"
	discoverymocks "github.com/meridianhq/meridian/internal/services/discovery/mocks"
	"github.com/meridianhq/meridian/internal/services/midpoint"
	midpointmocks "github.com/meridianhq/meridian/internal/services/midpoint/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ComputeTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockSessions   *sessionrepomocks.MockRepository
	mockVenues     *venuerepomocks.MockRepository
	mockVotes      *voterepomocks.MockRepository
	mockFinder     *midpointmocks.MockFinder
	mockDiscovery  *discoverymocks.MockService
	mockEnrichment *enrichmentmocks.MockClient
	svc            Service
	ctx            context.Context
	now            time.Time

	sess *models.Session
	seed models.LatLng
}

func (s *ComputeTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = sessionrepomocks.NewMockRepository(s.mockCtrl)
	s.mockVenues = venuerepomocks.NewMockRepository(s.mockCtrl)
	s.mockVotes = voterepomocks.NewMockRepository(s.mockCtrl)
	s.mockFinder = midpointmocks.NewMockFinder(s.mockCtrl)
	s.mockDiscovery = discoverymocks.NewMockService(s.mockCtrl)
	s.mockEnrichment = enrichmentmocks.NewMockClient(s.mockCtrl)

	mockClock := clockmocks.NewMockClock(s.mockCtrl)
	mockUUID := uuidmocks.NewMockUUID(s.mockCtrl)

	s.now = time.Unix(1700000000, 0)
	mockClock.EXPECT().Now().Return(s.now).AnyTimes()
	mockUUID.EXPECT().NewUUID().Return("generated-id").AnyTimes()

	svc, err := New(&Config{
		SessionRepo: s.mockSessions,
		VenueRepo:   s.mockVenues,
		VoteRepo:    s.mockVotes,
		Finder:      s.mockFinder,
		Discovery:   s.mockDiscovery,
		Enrichment:  s.mockEnrichment,
		Clock:       mockClock,
		UUID:        mockUUID,
		Pins:        pin.New(&pin.Config{Seed: 42}),
		BaseURL:     "http://localhost:3000",
	})
	s.Require().NoError(err)
	s.svc = svc

	s.ctx = context.Background()

	lat := 40.02
	lng := -73.02
	s.sess = &models.Session{
		ID:         "sess-1",
		Status:     models.SessionStatusReadyToCompute,
		UserALat:   40.0,
		UserALng:   -73.0,
		UserBLat:   &lat,
		UserBLng:   &lng,
		TravelMode: models.TravelModeTransit,
		PinCode:    "1234",
		CreatedAt:  s.now.Unix() - 60,
		UpdatedAt:  s.now.Unix() - 60,
	}
	s.seed = models.GeographicMidpoint(s.sess.LocationA(), models.LatLng{Lat: lat, Lng: lng})
}

func (s *ComputeTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestComputeTestSuite(t *testing.T) {
	suite.Run(t, new(ComputeTestSuite))
}

func (s *ComputeTestSuite) expectGetSession() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{SessionID: s.sess.ID}).
		Return(s.sess, nil)
}

func (s *ComputeTestSuite) expectTransitionToComputing() {
	s.mockSessions.EXPECT().
		TransitionStatus(gomock.Any(), &sessionRepo.TransitionStatusInput{
			SessionID: s.sess.ID,
			From:      models.SessionStatusReadyToCompute,
			To:        models.SessionStatusComputing,
			UpdatedAt: s.now.Unix(),
		}).
		Return(nil)
}

func (s *ComputeTestSuite) scoredVenues() []*discovery.ScoredVenue {
	return []*discovery.ScoredVenue{
		{
			VenueFact: &places.VenueFact{
				PlaceID:         "place-1",
				Name:            "Luna Cafe",
				Address:         "1 Main St",
				Location:        models.LatLng{Lat: 40.01, Lng: -73.01},
				Rating:          4.5,
				UserRatingCount: 200,
				PriceLevel:      "PRICE_LEVEL_MODERATE",
				MapsURI:         "https://maps.example.com/place-1",
				Types:           []string{"cafe"},
				Reviews: []places.Review{
					{Rating: 5, Text: "great coffee"},
					{Rating: 4, Text: "cozy"},
				},
			},
			Score: 10.35,
		},
		{
			VenueFact: &places.VenueFact{
				PlaceID:         "place-2",
				Name:            "Harbor Grill",
				Location:        models.LatLng{Lat: 40.011, Lng: -73.012},
				Rating:          4.2,
				UserRatingCount: 80,
				Types:           []string{"restaurant"},
			},
			Score: 7.99,
		},
	}
}

func (s *ComputeTestSuite) TestComputeHappyPath() {
	s.expectGetSession()
	s.expectTransitionToComputing()

	travelA := 600
	travelB := 640
	mid := models.LatLng{Lat: 40.012, Lng: -73.008}
	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), &midpoint.FindFairMidpointInput{
			LocationA: s.sess.LocationA(),
			LocationB: models.LatLng{Lat: 40.02, Lng: -73.02},
			Mode:      models.TravelModeTransit,
		}).
		Return(&midpoint.FindFairMidpointOutput{
			Midpoint:    mid,
			TravelTimeA: &travelA,
			TravelTimeB: &travelB,
		}, nil)

	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), &discovery.DiscoverVenuesInput{Center: mid}).
		Return(&discovery.DiscoverVenuesOutput{Venues: s.scoredVenues()}, nil)

	s.mockEnrichment.EXPECT().
		Describe(gomock.Any(), gomock.Any()).
		Return(&enrichment.DescribeOutput{
			Tags: map[string]*enrichment.DescriptiveTags{
				"Luna Cafe": {
					Description:   "A quiet corner cafe",
					CuisineTags:   []string{"coffee", "pastries"},
					VibeTags:      []string{"cozy"},
					BestFor:       []string{"first dates"},
					SignatureDish: "flat white",
				},
			},
		}, nil)
	s.mockEnrichment.EXPECT().
		AnalyzeReviews(gomock.Any(), gomock.Any()).
		Return(&enrichment.AnalyzeReviewsOutput{
			Insights: map[string]*enrichment.ReviewInsights{
				"Luna Cafe": {
					Sentiment:      map[string]float64{"positive": 0.9, "neutral": 0.1},
					StandoutDishes: []string{"flat white"},
					ReviewSummary:  "Loved for its coffee",
					Highlights:     []string{"coffee quality"},
				},
			},
		}, nil)

	var saved *sessionRepo.SaveComputeResultInput
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveComputeResultInput) error {
			saved = input
			return nil
		})

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().NoError(err)
	s.Require().NotNil(saved)

	sess := saved.Session
	s.Equal(models.SessionStatusVoting, sess.Status)
	s.Require().NotNil(sess.MidpointLat)
	s.Equal(mid.Lat, *sess.MidpointLat)
	s.Equal(&travelA, sess.UserATravelTime)
	s.Equal(&travelB, sess.UserBTravelTime)
	s.Nil(sess.Warning)

	s.Require().Len(saved.Venues, 2)
	first := saved.Venues[0]
	s.Equal(s.sess.ID, first.SessionID)
	s.Equal("place-1", first.PlaceID)
	s.Equal("Luna Cafe", first.Name)
	s.InDelta(10.35, first.Score, 1e-9)
	s.Require().NotNil(first.Description)
	s.Equal("A quiet corner cafe", *first.Description)
	s.Require().NotNil(first.CuisineTags)
	s.JSONEq(`["coffee","pastries"]`, *first.CuisineTags)
	s.Require().NotNil(first.ReviewSentiment)
	s.JSONEq(`{"positive":0.9,"neutral":0.1}`, *first.ReviewSentiment)
	s.Require().NotNil(first.RawReviewsCache)
	s.JSONEq(`[{"rating":5,"text":"great coffee"},{"rating":4,"text":"cozy"}]`, *first.RawReviewsCache)

	// The second venue had no enrichment results and keeps only facts
	second := saved.Venues[1]
	s.Nil(second.Description)
	s.Nil(second.ReviewSentiment)
	s.Nil(second.Address)
	s.Nil(second.RawReviewsCache)
}

func (s *ComputeTestSuite) TestComputeRejectsWrongStatus() {
	s.sess.Status = models.SessionStatusVoting
	s.expectGetSession()

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ComputeTestSuite) TestComputeLosesTransitionRace() {
	s.expectGetSession()
	s.mockSessions.EXPECT().
		TransitionStatus(gomock.Any(), gomock.Any()).
		Return(sessionRepo.ErrStatusConflict)

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().ErrorIs(err, ErrInvalidState)
}

func (s *ComputeTestSuite) TestComputeExpiredSession() {
	s.sess.CreatedAt = s.now.Unix() - int64((24*time.Hour).Seconds()) - 1
	s.expectGetSession()

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().ErrorIs(err, ErrSessionExpired)
}

func (s *ComputeTestSuite) TestComputeGeographicFallback() {
	s.expectGetSession()
	s.expectTransitionToComputing()

	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), gomock.Any()).
		Return(nil, midpoint.ErrMidpointUnavailable)

	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), &discovery.DiscoverVenuesInput{Center: s.seed}).
		Return(&discovery.DiscoverVenuesOutput{}, nil)

	var saved *sessionRepo.SaveComputeResultInput
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveComputeResultInput) error {
			saved = input
			return nil
		})

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Equal(models.SessionStatusVoting, saved.Session.Status)
	s.Equal(s.seed.Lat, *saved.Session.MidpointLat)
	s.Equal(s.seed.Lng, *saved.Session.MidpointLng)
	s.Nil(saved.Session.UserATravelTime)
	s.Nil(saved.Session.UserBTravelTime)
	s.Require().NotNil(saved.Session.Warning)
	s.Equal(warningGeographicFallback, *saved.Session.Warning)
}

func (s *ComputeTestSuite) TestComputeDiscoveryFailureDegradesToEmpty() {
	s.expectGetSession()
	s.expectTransitionToComputing()

	mid := models.LatLng{Lat: 40.012, Lng: -73.008}
	warning := midpoint.WarningCouldNotBalance
	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), gomock.Any()).
		Return(&midpoint.FindFairMidpointOutput{Midpoint: mid, Warning: &warning}, nil)

	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), gomock.Any()).
		Return(nil, discovery.ErrDiscoveryFailed)

	var saved *sessionRepo.SaveComputeResultInput
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveComputeResultInput) error {
			saved = input
			return nil
		})

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().NoError(err)
	s.Require().NotNil(saved)
	s.Empty(saved.Venues)
	s.Equal(models.SessionStatusVoting, saved.Session.Status)
	s.Require().NotNil(saved.Session.Warning)
	s.Equal(midpoint.WarningCouldNotBalance+"; "+warningDiscoveryFailed, *saved.Session.Warning)
}

func (s *ComputeTestSuite) TestComputeEnrichmentFailureKeepsFacts() {
	s.expectGetSession()
	s.expectTransitionToComputing()

	travelA := 600
	travelB := 640
	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), gomock.Any()).
		Return(&midpoint.FindFairMidpointOutput{
			Midpoint:    models.LatLng{Lat: 40.012, Lng: -73.008},
			TravelTimeA: &travelA,
			TravelTimeB: &travelB,
		}, nil)
	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), gomock.Any()).
		Return(&discovery.DiscoverVenuesOutput{Venues: s.scoredVenues()}, nil)

	s.mockEnrichment.EXPECT().
		Describe(gomock.Any(), gomock.Any()).
		Return(nil, enrichment.ErrEnrichmentFailed)
	s.mockEnrichment.EXPECT().
		AnalyzeReviews(gomock.Any(), gomock.Any()).
		Return(nil, enrichment.ErrEnrichmentFailed)

	var saved *sessionRepo.SaveComputeResultInput
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveComputeResultInput) error {
			saved = input
			return nil
		})

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().NoError(err)
	s.Require().Len(saved.Venues, 2)
	s.Equal("Luna Cafe", saved.Venues[0].Name)
	s.Nil(saved.Venues[0].Description)
	s.Nil(saved.Venues[0].ReviewSentiment)
	s.Nil(saved.Session.Warning)
}

func (s *ComputeTestSuite) TestComputePersistenceFailureRegresses() {
	s.expectGetSession()
	s.expectTransitionToComputing()

	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), gomock.Any()).
		Return(nil, midpoint.ErrMidpointUnavailable)
	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), gomock.Any()).
		Return(&discovery.DiscoverVenuesOutput{}, nil)
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		Return(errors.New("disk full"))

	s.mockSessions.EXPECT().
		TransitionStatus(gomock.Any(), &sessionRepo.TransitionStatusInput{
			SessionID: s.sess.ID,
			From:      models.SessionStatusComputing,
			To:        models.SessionStatusReadyToCompute,
			UpdatedAt: s.now.Unix(),
		}).
		Return(nil)

	_, err := s.svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().ErrorIs(err, ErrComputeFailed)
}

func (s *ComputeTestSuite) TestComputeSkipsEnrichmentWhenUnconfigured() {
	svc, err := New(&Config{
		SessionRepo: s.mockSessions,
		VenueRepo:   s.mockVenues,
		VoteRepo:    s.mockVotes,
		Finder:      s.mockFinder,
		Discovery:   s.mockDiscovery,
		Clock:       &fixedClock{now: s.now},
		UUID:        &fixedUUID{},
		Pins:        pin.New(&pin.Config{Seed: 42}),
	})
	s.Require().NoError(err)

	s.expectGetSession()
	s.expectTransitionToComputing()
	s.mockFinder.EXPECT().
		FindFairMidpoint(gomock.Any(), gomock.Any()).
		Return(&midpoint.FindFairMidpointOutput{Midpoint: s.seed}, nil)
	s.mockDiscovery.EXPECT().
		DiscoverVenues(gomock.Any(), gomock.Any()).
		Return(&discovery.DiscoverVenuesOutput{Venues: s.scoredVenues()}, nil)

	var saved *sessionRepo.SaveComputeResultInput
	s.mockSessions.EXPECT().
		SaveComputeResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.SaveComputeResultInput) error {
			saved = input
			return nil
		})

	_, err = svc.Compute(s.ctx, &ComputeInput{SessionID: s.sess.ID})

	s.Require().NoError(err)
	s.Require().Len(saved.Venues, 2)
	s.Nil(saved.Venues[0].Description)
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

type fixedUUID struct{}

func (u *fixedUUID) NewUUID() string {
	return "generated-id"
}
