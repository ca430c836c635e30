package routing

import "errors"

var (
	// ErrOracleUnavailable indicates a provider or network failure
	ErrOracleUnavailable = errors.New("travel time provider unavailable")

	// ErrNoRouteFound indicates the provider found no route between the points
	ErrNoRouteFound = errors.New("no route found")
)
