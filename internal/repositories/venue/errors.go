package venue

import "errors"

// ErrVenueNotFound is returned when a venue is not found
var ErrVenueNotFound = errors.New("venue not found")
