package routing

import "github.com/meridianhq/meridian/internal/models"

type QueryInput struct {
	Origin      models.LatLng
	Destination models.LatLng
	Mode        models.TravelMode
}

type QueryOutput struct {
	// DurationSeconds is the travel time, never negative
	DurationSeconds int
}
