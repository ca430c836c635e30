package models

// Voter identifies which party cast a vote
type Voter string

const (
	// VoterA is the party that created the session
	VoterA Voter = "a"

	// VoterB is the party that joined with the pin code
	VoterB Voter = "b"
)

// Valid reports whether the voter is one of the two party roles.
func (v Voter) Valid() bool {
	return v == VoterA || v == VoterB
}

// Vote represents one party's choice of venue. At most one vote per
// voter per session.
type Vote struct {
	// ID is the unique identifier for the vote
	ID string `gorm:"column:id;primaryKey"`

	// SessionID is the session the vote belongs to
	SessionID string `gorm:"column:session_id;not null;uniqueIndex:idx_votes_session_voter"`

	// VenueID must reference a venue of the same session
	VenueID string `gorm:"column:venue_id;not null"`

	// Voter is the party role that cast the vote
	Voter Voter `gorm:"column:voter;not null;uniqueIndex:idx_votes_session_voter"`

	// CreatedAt is seconds since epoch
	CreatedAt int64 `gorm:"column:created_at;not null"`
}

// TableName overrides the gorm table name
func (Vote) TableName() string {
	return "votes"
}
