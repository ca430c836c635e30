package routing_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/routing"
	"github.com/meridianhq/meridian/internal/routing/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CachedOracleTestSuite struct {
	suite.Suite
	mockCtrl   *gomock.Controller
	mockOracle *mocks.MockOracle
	mr         *miniredis.Miniredis
	client     *redis.Client
	cached     routing.Oracle
	ctx        context.Context

	testInput *routing.QueryInput
}

func (s *CachedOracleTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockOracle = mocks.NewMockOracle(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	cached, err := routing.NewCached(&routing.CacheConfig{
		Inner:       s.mockOracle,
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.cached = cached

	s.ctx = context.Background()
	s.testInput = &routing.QueryInput{
		Origin:      models.LatLng{Lat: 40.0, Lng: -73.0},
		Destination: models.LatLng{Lat: 40.01, Lng: -73.01},
		Mode:        models.TravelModeTransit,
	}
}

func (s *CachedOracleTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestCachedOracleTestSuite(t *testing.T) {
	suite.Run(t, new(CachedOracleTestSuite))
}

func (s *CachedOracleTestSuite) TestSecondQueryHitsCache() {
	s.mockOracle.EXPECT().
		Query(gomock.Any(), s.testInput).
		Return(&routing.QueryOutput{DurationSeconds: 600}, nil).
		Times(1)

	first, err := s.cached.Query(s.ctx, s.testInput)
	s.Require().NoError(err)
	s.Equal(600, first.DurationSeconds)

	second, err := s.cached.Query(s.ctx, s.testInput)
	s.Require().NoError(err)
	s.Equal(600, second.DurationSeconds)
}

func (s *CachedOracleTestSuite) TestErrorsAreNotCached() {
	s.mockOracle.EXPECT().
		Query(gomock.Any(), s.testInput).
		Return(nil, routing.ErrNoRouteFound).
		Times(2)

	_, err := s.cached.Query(s.ctx, s.testInput)
	s.Require().ErrorIs(err, routing.ErrNoRouteFound)

	_, err = s.cached.Query(s.ctx, s.testInput)
	s.Require().ErrorIs(err, routing.ErrNoRouteFound)
}

func (s *CachedOracleTestSuite) TestDifferentModesUseDifferentKeys() {
	walking := &routing.QueryInput{
		Origin:      s.testInput.Origin,
		Destination: s.testInput.Destination,
		Mode:        models.TravelModeWalking,
	}

	s.mockOracle.EXPECT().
		Query(gomock.Any(), s.testInput).
		Return(&routing.QueryOutput{DurationSeconds: 600}, nil).
		Times(1)
	s.mockOracle.EXPECT().
		Query(gomock.Any(), walking).
		Return(&routing.QueryOutput{DurationSeconds: 1800}, nil).
		Times(1)

	transitOut, err := s.cached.Query(s.ctx, s.testInput)
	s.Require().NoError(err)
	walkingOut, err := s.cached.Query(s.ctx, walking)
	s.Require().NoError(err)

	s.Equal(600, transitOut.DurationSeconds)
	s.Equal(1800, walkingOut.DurationSeconds)
}
