package enrichment

import "github.com/meridianhq/meridian/internal/places"

type DescribeInput struct {
	Venues []*places.VenueFact
}

type DescribeOutput struct {
	// Tags is keyed by venue name; venues the capability skipped are absent
	Tags map[string]*DescriptiveTags
}

type AnalyzeReviewsInput struct {
	Venues []*places.VenueFact
}

type AnalyzeReviewsOutput struct {
	// Insights is keyed by venue name; venues without reviews are absent
	Insights map[string]*ReviewInsights
}

// DescriptiveTags is the describe capability's output for one venue.
type DescriptiveTags struct {
	Description   string   `json:"description"`
	CuisineTags   []string `json:"cuisineTags"`
	VibeTags      []string `json:"vibeTags"`
	BestFor       []string `json:"bestFor"`
	SignatureDish string   `json:"signatureDish"`
}

// ReviewInsights is the review analysis output for one venue.
type ReviewInsights struct {
	// Sentiment maps positive/neutral/negative to fractions summing to 1.0
	Sentiment map[string]float64 `json:"sentiment"`

	StandoutDishes []string `json:"standoutDishes"`
	ReviewSummary  string   `json:"reviewSummary"`
	Highlights     []string `json:"highlights"`
}
