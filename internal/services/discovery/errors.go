package discovery

import "errors"

var (
	// ErrDiscoveryFailed indicates a hard provider error; too few
	// results is not a failure
	ErrDiscoveryFailed = errors.New("venue discovery failed")

	// ErrNilConfig indicates the service was built without a config
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrNilPlacesClient indicates the service was built without a provider
	ErrNilPlacesClient = errors.New("places client cannot be nil")
)
