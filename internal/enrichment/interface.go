package enrichment

//go:generate mockgen -package=mocks -destination=mocks/mock_client.go github.com/meridianhq/meridian/internal/enrichment Client

import "context"

// Client turns venue facts into structured tags via an external
// capability. The two calls are logically separate capabilities; either
// may succeed while the other fails, and their results merge
// independently.
type Client interface {
	// Describe returns descriptive tags keyed by venue name
	Describe(ctx context.Context, input *DescribeInput) (*DescribeOutput, error)

	// AnalyzeReviews returns review-derived insights keyed by venue name
	AnalyzeReviews(ctx context.Context, input *AnalyzeReviewsInput) (*AnalyzeReviewsOutput, error)
}
