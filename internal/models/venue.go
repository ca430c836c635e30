package models

// Venue represents a candidate meeting place discovered for a session.
// Venues are written once by the compute pipeline and never updated.
type Venue struct {
	// ID is the unique identifier for the venue
	ID string `gorm:"column:id;primaryKey"`

	// SessionID is the session this venue was discovered for
	SessionID string `gorm:"column:session_id;not null;index"`

	// PlaceID is the discovery provider's identifier
	PlaceID string `gorm:"column:place_id;not null"`

	Name    string  `gorm:"column:name;not null"`
	Address *string `gorm:"column:address"`
	Lat     float64 `gorm:"column:lat;not null"`
	Lng     float64 `gorm:"column:lng;not null"`

	Rating          float64 `gorm:"column:rating;not null"`
	UserRatingCount int     `gorm:"column:user_rating_count;not null"`

	// Score is the discovery ranking score, rating x log10(rating count).
	// Persisted so the vote tie-break stays deterministic across restarts.
	Score float64 `gorm:"column:score;not null"`

	PriceLevel *string `gorm:"column:price_level"`
	MapsURI    *string `gorm:"column:maps_uri"`

	// Types is a JSON-encoded array of provider category tags
	Types *string `gorm:"column:types"`

	// Enrichment fields, nil when the describe call failed or was skipped
	Description   *string `gorm:"column:description"`
	CuisineTags   *string `gorm:"column:cuisine_tags"`
	VibeTags      *string `gorm:"column:vibe_tags"`
	BestFor       *string `gorm:"column:best_for"`
	SignatureDish *string `gorm:"column:signature_dish"`

	// Review analysis fields, nil when review analysis failed or was skipped
	ReviewSentiment  *string `gorm:"column:review_sentiment"`
	StandoutDishes   *string `gorm:"column:standout_dishes"`
	ReviewSummary    *string `gorm:"column:review_summary"`
	ReviewHighlights *string `gorm:"column:review_highlights"`

	// EditorialSummary is the provider's own blurb, when present
	EditorialSummary *string `gorm:"column:editorial_summary"`

	// RawReviewsCache holds the top-5 raw reviews the analysis ran on
	RawReviewsCache *string `gorm:"column:raw_reviews_cache"`
}

// TableName overrides the gorm table name
func (Venue) TableName() string {
	return "venues"
}
