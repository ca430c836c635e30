package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/meridianhq/meridian/internal/places"
	"github.com/stretchr/testify/suite"
)

type AnthropicClientTestSuite struct {
	suite.Suite
	ctx context.Context

	testVenues []*places.VenueFact
}

func (s *AnthropicClientTestSuite) SetupTest() {
	s.ctx = context.Background()

	s.testVenues = []*places.VenueFact{
		{
			Name:            "Cafe Uno",
			Types:           []string{"cafe"},
			Rating:          4.5,
			UserRatingCount: 200,
			Address:         "1 Main St",
			Reviews: []places.Review{
				{Rating: 5, Text: "great flat white"},
			},
		},
		{
			Name:            "Trattoria Due",
			Types:           []string{"restaurant"},
			Rating:          4.2,
			UserRatingCount: 80,
			Address:         "2 Main St",
		},
	}
}

func TestAnthropicClientTestSuite(t *testing.T) {
	suite.Run(t, new(AnthropicClientTestSuite))
}

func (s *AnthropicClientTestSuite) newClient(attempts int, handler http.HandlerFunc) (*AnthropicClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client, err := NewAnthropic(&AnthropicConfig{
		APIKey:   "test-key",
		BaseURL:  server.URL,
		Attempts: attempts,
	})
	s.Require().NoError(err)
	return client, server
}

func messageResponse(text string) string {
	body := `{"content": [{"type": "text", "text": ` + text + `}]}`
	return body
}

func (s *AnthropicClientTestSuite) TestDescribeParsesTags() {
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		s.Equal("test-key", r.Header.Get("x-api-key"))
		s.Equal("2023-06-01", r.Header.Get("anthropic-version"))
		w.Write([]byte(messageResponse(`"[{\"name\": \"Cafe Uno\", \"description\": \"A bright corner cafe.\", \"cuisineTags\": [\"Coffee\"], \"vibeTags\": [\"Cozy\"], \"bestFor\": [\"Casual catch-up\"], \"signatureDish\": \"Flat white\"}]"`)))
	})
	defer server.Close()

	output, err := client.Describe(s.ctx, &DescribeInput{Venues: s.testVenues})

	s.Require().NoError(err)
	s.Require().Contains(output.Tags, "Cafe Uno")
	s.Equal("A bright corner cafe.", output.Tags["Cafe Uno"].Description)
	s.Equal([]string{"Coffee"}, output.Tags["Cafe Uno"].CuisineTags)
	s.Equal("Flat white", output.Tags["Cafe Uno"].SignatureDish)
}

func (s *AnthropicClientTestSuite) TestDescribeStripsCodeFences() {
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(messageResponse(`"` + "```json\\n[{\\\"name\\\": \\\"Cafe Uno\\\", \\\"description\\\": \\\"Fenced.\\\"}]\\n```" + `"`)))
	})
	defer server.Close()

	output, err := client.Describe(s.ctx, &DescribeInput{Venues: s.testVenues})

	s.Require().NoError(err)
	s.Require().Contains(output.Tags, "Cafe Uno")
	s.Equal("Fenced.", output.Tags["Cafe Uno"].Description)
}

func (s *AnthropicClientTestSuite) TestDescribeRetriesOnce() {
	var calls atomic.Int32
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(messageResponse(`"[]"`)))
	})
	defer server.Close()

	_, err := client.Describe(s.ctx, &DescribeInput{Venues: s.testVenues})

	s.Require().NoError(err)
	s.Equal(int32(2), calls.Load())
}

func (s *AnthropicClientTestSuite) TestDescribeExhaustsAttempts() {
	var calls atomic.Int32
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.Describe(s.ctx, &DescribeInput{Venues: s.testVenues})

	s.Require().ErrorIs(err, ErrEnrichmentFailed)
	s.Equal(int32(2), calls.Load())
}

func (s *AnthropicClientTestSuite) TestDescribeEmptyVenuesSkipsCall() {
	var calls atomic.Int32
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	defer server.Close()

	output, err := client.Describe(s.ctx, &DescribeInput{})

	s.Require().NoError(err)
	s.Empty(output.Tags)
	s.Equal(int32(0), calls.Load())
}

func (s *AnthropicClientTestSuite) TestAnalyzeReviewsParsesInsights() {
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(messageResponse(`"[{\"venueName\": \"Cafe Uno\", \"sentiment\": {\"positive\": 0.7, \"neutral\": 0.2, \"negative\": 0.1}, \"standoutDishes\": [\"Flat white\"], \"reviewSummary\": \"Loved.\", \"highlights\": [\"Fast service\"]}]"`)))
	})
	defer server.Close()

	output, err := client.AnalyzeReviews(s.ctx, &AnalyzeReviewsInput{Venues: s.testVenues})

	s.Require().NoError(err)
	s.Require().Contains(output.Insights, "Cafe Uno")

	insights := output.Insights["Cafe Uno"]
	s.InDelta(0.7, insights.Sentiment["positive"], 0.001)
	s.Equal([]string{"Flat white"}, insights.StandoutDishes)
	s.Equal("Loved.", insights.ReviewSummary)
}

func (s *AnthropicClientTestSuite) TestAnalyzeReviewsSkipsWhenNoReviews() {
	var calls atomic.Int32
	client, server := s.newClient(2, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})
	defer server.Close()

	// Trattoria Due has no reviews; alone it should not trigger a call
	output, err := client.AnalyzeReviews(s.ctx, &AnalyzeReviewsInput{
		Venues: s.testVenues[1:],
	})

	s.Require().NoError(err)
	s.Empty(output.Insights)
	s.Equal(int32(0), calls.Load())
}
