package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/meridianhq/meridian/internal/common/clock"
	"github.com/meridianhq/meridian/internal/common/pin"
	"github.com/meridianhq/meridian/internal/common/uuid"
	"github.com/meridianhq/meridian/internal/enrichment"
	"github.com/meridianhq/meridian/internal/models"
	sessionRepo "github.com/meridianhq/meridian/internal/repositories/session"
	venueRepo "github.com/meridianhq/meridian/internal/repositories/venue"
	voteRepo "github.com/meridianhq/meridian/internal/repositories/vote"
	"github.com/meridianhq/meridian/internal/services/discovery"
	"github.com/meridianhq/meridian/internal/services/midpoint"
)

const defaultSessionTTL = 24 * time.Hour

// service implements the Service interface
type service struct {
	sessionRepo sessionRepo.Repository
	venueRepo   venueRepo.Repository
	voteRepo    voteRepo.Repository
	finder      midpoint.Finder
	discovery   discovery.Service
	enrichment  enrichment.Client
	clock       clock.Clock
	uuid        uuid.UUID
	pins        *pin.Minter
	ttl         time.Duration
	baseURL     string
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, fmt.Errorf("%w: session repository", ErrNilDependency)
	}

	if cfg.VenueRepo == nil {
		return nil, fmt.Errorf("%w: venue repository", ErrNilDependency)
	}

	if cfg.VoteRepo == nil {
		return nil, fmt.Errorf("%w: vote repository", ErrNilDependency)
	}

	if cfg.Finder == nil {
		return nil, fmt.Errorf("%w: midpoint finder", ErrNilDependency)
	}

	if cfg.Discovery == nil {
		return nil, fmt.Errorf("%w: discovery service", ErrNilDependency)
	}

	if cfg.Clock == nil {
		return nil, fmt.Errorf("%w: clock", ErrNilDependency)
	}

	if cfg.UUID == nil {
		return nil, fmt.Errorf("%w: uuid generator", ErrNilDependency)
	}

	if cfg.Pins == nil {
		return nil, fmt.Errorf("%w: pin minter", ErrNilDependency)
	}

	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &service{
		sessionRepo: cfg.SessionRepo,
		venueRepo:   cfg.VenueRepo,
		voteRepo:    cfg.VoteRepo,
		finder:      cfg.Finder,
		discovery:   cfg.Discovery,
		enrichment:  cfg.Enrichment,
		clock:       cfg.Clock,
		uuid:        cfg.UUID,
		pins:        cfg.Pins,
		ttl:         ttl,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// CreateSession starts a new session with party A's location fixed and
// a freshly minted join secret
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if err := validateLatLng(input.Location); err != nil {
		return nil, err
	}

	mode := input.Mode
	if mode == "" {
		mode = models.TravelModeTransit
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTravelMode, mode)
	}

	now := s.clock.Now().Unix()
	sess := &models.Session{
		ID:         s.uuid.NewUUID(),
		Status:     models.SessionStatusWaitingForB,
		UserALat:   input.Location.Lat,
		UserALng:   input.Location.Lng,
		UserALabel: input.Label,
		TravelMode: mode,
		PinCode:    s.pins.Mint(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &CreateSessionOutput{
		Session:  sess,
		ShareURL: fmt.Sprintf("%s/join/%s", s.baseURL, sess.ID),
	}, nil
}

// GetSession retrieves a session with its venues and votes
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sess, err := s.getActiveSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	venues, err := s.venueRepo.ListVenues(ctx, &venueRepo.ListVenuesInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	votes, err := s.voteRepo.ListVotes(ctx, &voteRepo.ListVotesInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	return &GetSessionOutput{
		Session: sess,
		Venues:  venues,
		Votes:   votes,
	}, nil
}

// JoinSession attaches party B's location. The join secret must match
// and the session must still be waiting for party B.
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	if err := validateLatLng(input.Location); err != nil {
		return nil, err
	}

	sess, err := s.getActiveSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != models.SessionStatusWaitingForB {
		return nil, ErrInvalidState
	}

	if input.PinCode != sess.PinCode {
		return nil, ErrInvalidPin
	}

	lat := input.Location.Lat
	lng := input.Location.Lng
	sess.UserBLat = &lat
	sess.UserBLng = &lng
	sess.UserBLabel = input.Label
	sess.Status = models.SessionStatusReadyToCompute
	sess.UpdatedAt = s.clock.Now().Unix()

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &JoinSessionOutput{
		Session: sess,
	}, nil
}

// CastVote records one party's venue choice. Once both parties have
// voted the winner is resolved and the session completes.
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil || input.SessionID == "" || input.VenueID == "" {
		return nil, errors.New("input, session ID, and venue ID cannot be empty")
	}

	if !input.Voter.Valid() {
		return nil, ErrInvalidVoter
	}

	sess, err := s.getActiveSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != models.SessionStatusVoting {
		return nil, ErrInvalidState
	}

	voted, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: input.VenueID,
	})
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	// A vote must reference a venue of the same session
	if voted.SessionID != sess.ID {
		return nil, ErrVenueNotFound
	}

	err = s.voteRepo.SaveVote(ctx, &voteRepo.SaveVoteInput{
		Vote: &models.Vote{
			ID:        s.uuid.NewUUID(),
			SessionID: sess.ID,
			VenueID:   input.VenueID,
			Voter:     input.Voter,
			CreatedAt: s.clock.Now().Unix(),
		},
	})
	if err != nil {
		if errors.Is(err, voteRepo.ErrDuplicateVote) {
			return nil, ErrAlreadyVoted
		}
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	votes, err := s.voteRepo.ListVotes(ctx, &voteRepo.ListVotesInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	if len(votes) < 2 {
		return &CastVoteOutput{}, nil
	}

	winnerID, err := s.resolveWinner(ctx, votes)
	if err != nil {
		return nil, err
	}

	sess.WinnerVenueID = &winnerID
	sess.Status = models.SessionStatusCompleted
	sess.UpdatedAt = s.clock.Now().Unix()

	err = s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: sess,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &CastVoteOutput{
		AllVotesIn:    true,
		WinnerVenueID: &winnerID,
	}, nil
}

// ListVenues returns the session's venues, best score first
func (s *service) ListVenues(ctx context.Context, input *ListVenuesInput) (*ListVenuesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sess, err := s.getActiveSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	venues, err := s.venueRepo.ListVenues(ctx, &venueRepo.ListVenuesInput{
		SessionID: sess.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	return &ListVenuesOutput{
		Venues: venues,
	}, nil
}

// resolveWinner picks the agreed venue, or breaks the tie by higher
// discovery score and then by smaller venue ID so the outcome is
// deterministic.
func (s *service) resolveWinner(ctx context.Context, votes []*models.Vote) (string, error) {
	if votes[0].VenueID == votes[1].VenueID {
		return votes[0].VenueID, nil
	}

	first, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: votes[0].VenueID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get voted venue: %w", err)
	}

	second, err := s.venueRepo.GetVenue(ctx, &venueRepo.GetVenueInput{
		VenueID: votes[1].VenueID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get voted venue: %w", err)
	}

	if first.Score != second.Score {
		if first.Score > second.Score {
			return first.ID, nil
		}
		return second.ID, nil
	}

	if first.ID < second.ID {
		return first.ID, nil
	}
	return second.ID, nil
}

// getActiveSession loads a session and enforces the read-time TTL
func (s *service) getActiveSession(ctx context.Context, sessionID string) (*models.Session, error) {
	sess, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if s.clock.Now().Unix()-sess.CreatedAt > int64(s.ttl.Seconds()) {
		return nil, ErrSessionExpired
	}

	return sess, nil
}

func validateLatLng(l models.LatLng) error {
	if l.Lat < -90 || l.Lat > 90 || l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidLocation, l.Lat, l.Lng)
	}
	return nil
}
