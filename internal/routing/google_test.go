package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meridianhq/meridian/internal/models"
	"github.com/stretchr/testify/suite"
)

type GoogleOracleTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *GoogleOracleTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func TestGoogleOracleTestSuite(t *testing.T) {
	suite.Run(t, new(GoogleOracleTestSuite))
}

func (s *GoogleOracleTestSuite) newOracle(handler http.HandlerFunc) (*GoogleOracle, *httptest.Server) {
	server := httptest.NewServer(handler)
	oracle, err := NewGoogle(&GoogleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	s.Require().NoError(err)
	return oracle, server
}

func (s *GoogleOracleTestSuite) TestQueryReturnsDuration() {
	oracle, server := s.newOracle(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("test-key", r.URL.Query().Get("key"))
		s.Equal("transit", r.URL.Query().Get("mode"))
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "OK", "duration": {"value": 930}}]}]
		}`))
	})
	defer server.Close()

	output, err := oracle.Query(s.ctx, &QueryInput{
		Origin:      models.LatLng{Lat: 40.0, Lng: -73.0},
		Destination: models.LatLng{Lat: 40.01, Lng: -73.01},
		Mode:        models.TravelModeTransit,
	})

	s.Require().NoError(err)
	s.Equal(930, output.DurationSeconds)
}

func (s *GoogleOracleTestSuite) TestQueryNoRoute() {
	oracle, server := s.newOracle(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]
		}`))
	})
	defer server.Close()

	_, err := oracle.Query(s.ctx, &QueryInput{Mode: models.TravelModeTransit})

	s.Require().ErrorIs(err, ErrNoRouteFound)
}

func (s *GoogleOracleTestSuite) TestQueryProviderError() {
	oracle, server := s.newOracle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := oracle.Query(s.ctx, &QueryInput{Mode: models.TravelModeTransit})

	s.Require().ErrorIs(err, ErrOracleUnavailable)
}

func (s *GoogleOracleTestSuite) TestQueryTopLevelDenied() {
	oracle, server := s.newOracle(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key"}`))
	})
	defer server.Close()

	_, err := oracle.Query(s.ctx, &QueryInput{Mode: models.TravelModeTransit})

	s.Require().ErrorIs(err, ErrOracleUnavailable)
}

func (s *GoogleOracleTestSuite) TestNewGoogleRequiresKey() {
	_, err := NewGoogle(&GoogleConfig{})
	s.Error(err)

	_, err = NewGoogle(nil)
	s.Error(err)
}
