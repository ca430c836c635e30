package midpoint

import "errors"

var (
	// ErrMidpointUnavailable indicates the oracle failed for both
	// directions and no fair search is possible
	ErrMidpointUnavailable = errors.New("midpoint unavailable")

	// ErrNilConfig indicates the service was built without a config
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilOracle indicates the service was built without an oracle
	ErrNilOracle = errors.New("oracle cannot be nil")
)
