package models

// SessionStatus represents the current state of a meeting session
type SessionStatus string

const (
	// SessionStatusWaitingForB indicates the session is waiting for party B to join
	SessionStatusWaitingForB SessionStatus = "waiting_for_b"

	// SessionStatusReadyToCompute indicates both locations are known and the
	// pipeline has not run yet
	SessionStatusReadyToCompute SessionStatus = "ready_to_compute"

	// SessionStatusComputing indicates the midpoint pipeline is in flight
	SessionStatusComputing SessionStatus = "computing"

	// SessionStatusVoting indicates venues are available and parties are voting
	SessionStatusVoting SessionStatus = "voting"

	// SessionStatusCompleted indicates both votes are in and a winner is set
	SessionStatusCompleted SessionStatus = "completed"
)

// Session represents one two-party meeting negotiation
type Session struct {
	// ID is the unique identifier for the session
	ID string `gorm:"column:id;primaryKey"`

	// Status is the current state of the session
	Status SessionStatus `gorm:"column:status;not null"`

	// Party A fixes their location at creation; it is immutable afterwards
	UserALat   float64 `gorm:"column:user_a_lat;not null"`
	UserALng   float64 `gorm:"column:user_a_lng;not null"`
	UserALabel *string `gorm:"column:user_a_label"`

	// Party B's location is nil until they join, and set all-or-nothing
	UserBLat   *float64 `gorm:"column:user_b_lat"`
	UserBLng   *float64 `gorm:"column:user_b_lng"`
	UserBLabel *string  `gorm:"column:user_b_label"`

	// MidpointLat/Lng are set once the pipeline reaches voting
	MidpointLat *float64 `gorm:"column:midpoint_lat"`
	MidpointLng *float64 `gorm:"column:midpoint_lng"`

	// Travel times to the midpoint in seconds, nil when the oracle was down
	UserATravelTime *int `gorm:"column:user_a_travel_time"`
	UserBTravelTime *int `gorm:"column:user_b_travel_time"`

	// TravelMode is how both parties travel to the midpoint
	TravelMode TravelMode `gorm:"column:travel_mode;not null"`

	// WinnerVenueID references the venue both parties settled on
	WinnerVenueID *string `gorm:"column:winner_venue_id"`

	// PinCode is the join secret party B must present
	PinCode string `gorm:"column:pin_code"`

	// Warning carries non-fatal pipeline degradation notes
	Warning *string `gorm:"column:warning"`

	// CreatedAt/UpdatedAt are seconds since epoch
	CreatedAt int64 `gorm:"column:created_at;not null"`
	UpdatedAt int64 `gorm:"column:updated_at;not null"`
}

// TableName overrides the gorm table name
func (Session) TableName() string {
	return "sessions"
}

// LocationA returns party A's coordinate.
func (s *Session) LocationA() LatLng {
	return LatLng{Lat: s.UserALat, Lng: s.UserALng}
}

// LocationB returns party B's coordinate and whether it has been set.
func (s *Session) LocationB() (LatLng, bool) {
	if s.UserBLat == nil || s.UserBLng == nil {
		return LatLng{}, false
	}
	return LatLng{Lat: *s.UserBLat, Lng: *s.UserBLng}, true
}
