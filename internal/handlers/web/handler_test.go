package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/meridianhq/meridian/internal/models"
	"github.com/meridianhq/meridian/internal/services/session"
	"github.com/meridianhq/meridian/internal/services/session/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockSessions *mocks.MockService
	router       *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessions = mocks.NewMockService(s.mockCtrl)

	handler, err := New(&Config{Sessions: s.mockSessions})
	s.Require().NoError(err)
	s.router = handler.Router()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *HandlerTestSuite) TestCreateSession() {
	s.mockSessions.EXPECT().
		CreateSession(gomock.Any(), &session.CreateSessionInput{
			Location: models.LatLng{Lat: 40.0, Lng: -73.0},
		}).
		Return(&session.CreateSessionOutput{
			Session: &models.Session{
				ID:      "sess-1",
				Status:  models.SessionStatusWaitingForB,
				PinCode: "1234",
			},
			ShareURL: "http://localhost:3000/join/sess-1",
		}, nil)

	w := s.request(http.MethodPost, "/api/sessions", gin.H{"lat": 40.0, "lng": -73.0})

	s.Equal(http.StatusCreated, w.Code)
	body := s.decode(w)
	s.Equal("sess-1", body["sessionId"])
	s.Equal("http://localhost:3000/join/sess-1", body["shareUrl"])
	s.Equal("1234", body["pinCode"])
}

func (s *HandlerTestSuite) TestCreateSessionMissingCoordinates() {
	w := s.request(http.MethodPost, "/api/sessions", gin.H{"lat": 40.0})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestGetSessionNotFound() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), &session.GetSessionInput{SessionID: "missing"}).
		Return(nil, session.ErrSessionNotFound)

	w := s.request(http.MethodGet, "/api/sessions/missing", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestGetSessionExpired() {
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(nil, session.ErrSessionExpired)

	w := s.request(http.MethodGet, "/api/sessions/sess-1", nil)

	s.Equal(http.StatusGone, w.Code)
	body := s.decode(w)
	s.Equal(true, body["expired"])
}

func (s *HandlerTestSuite) TestGetSessionIncludesVenuesAndVotes() {
	warning := "could not balance travel times"
	s.mockSessions.EXPECT().
		GetSession(gomock.Any(), gomock.Any()).
		Return(&session.GetSessionOutput{
			Session: &models.Session{
				ID:         "sess-1",
				Status:     models.SessionStatusVoting,
				TravelMode: models.TravelModeTransit,
				Warning:    &warning,
			},
			Venues: []*models.Venue{{ID: "venue-1", SessionID: "sess-1", Name: "Luna Cafe", Score: 10.35}},
			Votes:  []*models.Vote{{ID: "vote-1", SessionID: "sess-1", VenueID: "venue-1", Voter: models.VoterA}},
		}, nil)

	w := s.request(http.MethodGet, "/api/sessions/sess-1", nil)

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("voting", body["status"])
	s.Equal(warning, body["warning"])
	s.Len(body["venues"], 1)
	s.Len(body["votes"], 1)
}

func (s *HandlerTestSuite) TestJoinSessionWrongPin() {
	s.mockSessions.EXPECT().
		JoinSession(gomock.Any(), gomock.Any()).
		Return(nil, session.ErrInvalidPin)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/join", gin.H{
		"lat": 40.02, "lng": -73.02, "pinCode": "0000",
	})

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlerTestSuite) TestJoinSession() {
	s.mockSessions.EXPECT().
		JoinSession(gomock.Any(), &session.JoinSessionInput{
			SessionID: "sess-1",
			PinCode:   "1234",
			Location:  models.LatLng{Lat: 40.02, Lng: -73.02},
		}).
		Return(&session.JoinSessionOutput{
			Session: &models.Session{ID: "sess-1", Status: models.SessionStatusReadyToCompute},
		}, nil)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/join", gin.H{
		"lat": 40.02, "lng": -73.02, "pinCode": "1234",
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["success"])
}

func (s *HandlerTestSuite) TestComputeNotReady() {
	s.mockSessions.EXPECT().
		Compute(gomock.Any(), &session.ComputeInput{SessionID: "sess-1"}).
		Return(nil, session.ErrInvalidState)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/compute", nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestCompute() {
	s.mockSessions.EXPECT().
		Compute(gomock.Any(), &session.ComputeInput{SessionID: "sess-1"}).
		Return(&session.ComputeOutput{}, nil)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/compute", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["success"])
}

func (s *HandlerTestSuite) TestCastVoteDuplicate() {
	s.mockSessions.EXPECT().
		CastVote(gomock.Any(), gomock.Any()).
		Return(nil, session.ErrAlreadyVoted)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/vote", gin.H{
		"venueId": "venue-1", "voter": "a",
	})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestCastVoteResolvesWinner() {
	winner := "venue-1"
	s.mockSessions.EXPECT().
		CastVote(gomock.Any(), &session.CastVoteInput{
			SessionID: "sess-1",
			VenueID:   "venue-1",
			Voter:     models.VoterB,
		}).
		Return(&session.CastVoteOutput{AllVotesIn: true, WinnerVenueID: &winner}, nil)

	w := s.request(http.MethodPost, "/api/sessions/sess-1/vote", gin.H{
		"venueId": "venue-1", "voter": "b",
	})

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(true, body["allVotesIn"])
	s.Equal("venue-1", body["winnerId"])
}

func (s *HandlerTestSuite) TestListVenues() {
	s.mockSessions.EXPECT().
		ListVenues(gomock.Any(), &session.ListVenuesInput{SessionID: "sess-1"}).
		Return(&session.ListVenuesOutput{
			Venues: []*models.Venue{
				{ID: "venue-1", Score: 10.35},
				{ID: "venue-2", Score: 3.43},
			},
		}, nil)

	w := s.request(http.MethodGet, "/api/sessions/sess-1/venues", nil)

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	venues, ok := body["venues"].([]any)
	s.Require().True(ok)
	s.Len(venues, 2)
}
