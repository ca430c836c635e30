package session

import (
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

// Config holds dependencies and settings for the session service
type Config struct {
	SessionRepo sessionRepo.Repository
	VenueRepo   venueRepo.Repository
	VoteRepo    voteRepo.Repository

	// Finder locates the travel-time-fair midpoint
	Finder midpoint.Finder

	// Discovery runs the venue search ladder
	Discovery discovery.Service

	// Enrichment is optional; when nil the pipeline skips enrichment
	// and venues keep only their provider facts
	Enrichment enrichment.Client

	Clock clock.Clock
	UUID  uuid.UUID

	// Pins mints join secrets for new sessions
	Pins *pin.Minter

	// SessionTTL is how long a session stays readable, default 24h.
	// Expiry is enforced at read time, never by deletion.
	SessionTTL time.Duration

	// BaseURL prefixes the share link handed to party A
	BaseURL string
}

type CreateSessionInput struct {
	Location models.LatLng
	Label    *string

	// Mode defaults to transit when empty
	Mode models.TravelMode
}

type CreateSessionOutput struct {
	Session *models.Session

	// ShareURL is the join link party A passes to party B
	ShareURL string
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
	Venues  []*models.Venue
	Votes   []*models.Vote
}

type JoinSessionInput struct {
	SessionID string
	PinCode   string
	Location  models.LatLng
	Label     *string
}

type JoinSessionOutput struct {
	Session *models.Session
}

type ComputeInput struct {
	SessionID string
}

type ComputeOutput struct{}

type CastVoteInput struct {
	SessionID string
	VenueID   string
	Voter     models.Voter
}

type CastVoteOutput struct {
	// AllVotesIn reports whether both parties have now voted
	AllVotesIn bool

	// WinnerVenueID is set once the session resolves
	WinnerVenueID *string
}

type ListVenuesInput struct {
	SessionID string
}

type ListVenuesOutput struct {
	Venues []*models.Venue
}
