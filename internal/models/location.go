package models

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeographicMidpoint returns the arithmetic mean of two coordinates.
// Good enough at city scale, where the small-angle error is negligible.
func GeographicMidpoint(a, b LatLng) LatLng {
	return LatLng{
		Lat: (a.Lat + b.Lat) / 2,
		Lng: (a.Lng + b.Lng) / 2,
	}
}

// TravelMode is how a party gets to the midpoint.
type TravelMode string

const (
	TravelModeWalking TravelMode = "walking"

	TravelModeTransit TravelMode = "transit"

	TravelModeDriving TravelMode = "driving"
)

// Valid reports whether the mode is one of the supported travel modes.
func (m TravelMode) Valid() bool {
	switch m {
	case TravelModeWalking, TravelModeTransit, TravelModeDriving:
		return true
	}
	return false
}
