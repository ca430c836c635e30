package places

import "github.com/meridianhq/meridian/internal/models"

type SearchInput struct {
	Center models.LatLng

	// RadiusMeters bounds the search circle
	RadiusMeters float64

	// Categories restricts the venue types, provider vocabulary
	Categories []string
}

type SearchOutput struct {
	Venues []*VenueFact
}

// Review is one raw customer review as returned by the provider.
type Review struct {
	// Rating is the reviewer's score out of 5
	Rating int `json:"rating"`

	// Text is the review body
	Text string `json:"text"`
}

// VenueFact is the typed form of one provider result. The loosely-typed
// provider payload is parsed into this at the adapter boundary and
// nothing downstream touches raw JSON.
type VenueFact struct {
	// PlaceID is the provider's identifier
	PlaceID string

	Name     string
	Address  string
	Location models.LatLng

	Rating          float64
	UserRatingCount int

	// PriceLevel is the provider's price tier label, empty when unknown
	PriceLevel string

	// MapsURI is the canonical map link
	MapsURI string

	// Types are the provider's category tags
	Types []string

	// EditorialSummary is the provider's own blurb, empty when absent
	EditorialSummary string

	// Reviews are the raw reviews, most relevant first
	Reviews []Review
}
