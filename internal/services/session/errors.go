package session

import "errors"

var (
	// ErrNilConfig is returned when the config is nil
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilDependency is returned when a required dependency is missing
	ErrNilDependency = errors.New("missing dependency")

	// ErrSessionNotFound is returned when the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the session is older than the TTL
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidState is returned when the session status does not allow
	// the requested operation
	ErrInvalidState = errors.New("session is not in the required state")

	// ErrInvalidPin is returned when the join secret does not match
	ErrInvalidPin = errors.New("invalid pin code")

	// ErrInvalidLocation is returned when a coordinate is out of range
	ErrInvalidLocation = errors.New("location out of range")

	// ErrInvalidTravelMode is returned for an unsupported travel mode
	ErrInvalidTravelMode = errors.New("unsupported travel mode")

	// ErrInvalidVoter is returned when the voter is not one of the two
	// party roles
	ErrInvalidVoter = errors.New("voter must be one of the two party roles")

	// ErrVenueNotFound is returned when the venue does not exist or does
	// not belong to the session
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAlreadyVoted is returned when the voter has already voted
	ErrAlreadyVoted = errors.New("voter has already voted in this session")

	// ErrComputeFailed is returned on total pipeline failure, after the
	// session has been regressed to ready_to_compute
	ErrComputeFailed = errors.New("compute pipeline failed")
)
