package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/meridianhq/meridian/internal/places"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com/v1/messages"
	anthropicVersion   = "2023-06-01"
	anthropicModel     = "claude-haiku-4-5-20251001"
	anthropicMaxTokens = 2048
	anthropicTimeout   = 30 * time.Second
	defaultAttempts    = 2
	reviewsPerVenue    = 5
)

const describeSystemPrompt = `You are a local restaurant and cafe expert. For each venue provided, generate:
1. A short 2-3 sentence description of what makes this place special
2. Cuisine tags (e.g., ["Japanese", "Ramen", "Izakaya"])
3. Vibe tags (e.g., ["Cozy", "Date night", "Trendy"])
4. Best-for labels (e.g., ["Casual catch-up", "Groups of 2-4"])
5. A signature dish or drink the place is likely known for

Base your response on the venue name, type, location, rating, and price level.
Return a valid JSON array with one object per venue. Each object must have these exact keys:
"name", "description", "cuisineTags", "vibeTags", "bestFor", "signatureDish"

Return ONLY the JSON array, no markdown formatting or code blocks.`

const reviewSystemPrompt = `You are a restaurant review analyst. For each venue, analyze the provided reviews and extract:

1. SENTIMENT: Calculate approximate percentages of positive/neutral/negative sentiment (must sum to 1.0)
2. STANDOUT DISHES: Identify specific dishes, drinks, or menu items mentioned multiple times or praised highly (be specific - include exact names, max 5 items)
3. REVIEW SUMMARY: Write 2-3 sentences summarizing what customers love or dislike
4. HIGHLIGHTS: Extract 3-5 key themes (e.g., "Great for dates", "Fast service", "Can be noisy")

Return ONLY valid JSON array with structure:
[
  {
    "venueName": "...",
    "sentiment": {"positive": 0.7, "neutral": 0.2, "negative": 0.1},
    "standoutDishes": ["Dish 1", "Dish 2"],
    "reviewSummary": "...",
    "highlights": ["Theme 1", "Theme 2"]
  }
]

If a venue has no reviews, omit it from the array entirely. Return ONLY the JSON array, no markdown formatting or code blocks.`

// AnthropicClient implements Client against the Anthropic messages API
type AnthropicClient struct {
	apiKey   string
	baseURL  string
	model    string
	attempts int
	client   *http.Client
}

// AnthropicConfig holds configuration for the Anthropic client
type AnthropicConfig struct {
	// APIKey is the Anthropic API key
	APIKey string

	// BaseURL overrides the API endpoint, for tests
	BaseURL string

	// Attempts bounds how many times each call is tried; defaults to 2,
	// no backoff between attempts
	Attempts int
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewAnthropic creates a new Anthropic enrichment client
func NewAnthropic(cfg *AnthropicConfig) (*AnthropicClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}

	return &AnthropicClient{
		apiKey:   cfg.APIKey,
		baseURL:  baseURL,
		model:    anthropicModel,
		attempts: attempts,
		client:   &http.Client{Timeout: anthropicTimeout},
	}, nil
}

// Describe returns descriptive tags keyed by venue name
func (c *AnthropicClient) Describe(ctx context.Context, input *DescribeInput) (*DescribeOutput, error) {
	output := &DescribeOutput{Tags: map[string]*DescriptiveTags{}}

	if input == nil || len(input.Venues) == 0 {
		return output, nil
	}

	userMessage, err := describeUserMessage(input.Venues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}

	raw, err := c.complete(ctx, describeSystemPrompt, userMessage, "describe")
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Name string `json:"name"`
		DescriptiveTags
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing describe response: %v", ErrEnrichmentFailed, err)
	}

	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		tags := entry.DescriptiveTags
		output.Tags[entry.Name] = &tags
	}

	return output, nil
}

// AnalyzeReviews returns review-derived insights keyed by venue name
func (c *AnthropicClient) AnalyzeReviews(ctx context.Context, input *AnalyzeReviewsInput) (*AnalyzeReviewsOutput, error) {
	output := &AnalyzeReviewsOutput{Insights: map[string]*ReviewInsights{}}

	if input == nil {
		return output, nil
	}

	userMessage, hasReviews, err := reviewUserMessage(input.Venues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}
	if !hasReviews {
		return output, nil
	}

	raw, err := c.complete(ctx, reviewSystemPrompt, userMessage, "review analysis")
	if err != nil {
		return nil, err
	}

	var entries []struct {
		VenueName string `json:"venueName"`
		ReviewInsights
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: parsing review response: %v", ErrEnrichmentFailed, err)
	}

	for _, entry := range entries {
		if entry.VenueName == "" {
			continue
		}
		insights := entry.ReviewInsights
		output.Insights[entry.VenueName] = &insights
	}

	return output, nil
}

// complete runs one bounded-attempt message exchange and returns the
// text content with any code fences stripped
func (c *AnthropicClient) complete(ctx context.Context, system, user, label string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.attempts; attempt++ {
		text, err := c.send(ctx, system, user)
		if err == nil {
			return stripCodeFences(text), nil
		}

		lastErr = err
		if attempt < c.attempts {
			log.Printf("%s attempt %d failed, retrying: %v", label, attempt, err)
		}
	}

	return "", fmt.Errorf("%w: %s after %d attempts: %v", ErrEnrichmentFailed, label, c.attempts, lastErr)
}

func (c *AnthropicClient) send(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: user}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, detail)
	}

	var body anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	for _, block := range body.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", errors.New("no text content in response")
}

func describeUserMessage(venues []*places.VenueFact) (string, error) {
	type venueSummary struct {
		Name       string   `json:"name"`
		Types      []string `json:"types"`
		Rating     float64  `json:"rating"`
		Reviews    int      `json:"reviews"`
		Address    string   `json:"address"`
		PriceLevel string   `json:"priceLevel"`
	}

	simplified := make([]venueSummary, 0, len(venues))
	for _, venue := range venues {
		priceLevel := venue.PriceLevel
		if priceLevel == "" {
			priceLevel = "UNKNOWN"
		}
		simplified = append(simplified, venueSummary{
			Name:       venue.Name,
			Types:      venue.Types,
			Rating:     venue.Rating,
			Reviews:    venue.UserRatingCount,
			Address:    venue.Address,
			PriceLevel: priceLevel,
		})
	}

	payload, err := json.MarshalIndent(simplified, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func reviewUserMessage(venues []*places.VenueFact) (string, bool, error) {
	type venueReviews struct {
		Name    string   `json:"name"`
		Reviews []string `json:"reviews"`
	}

	var simplified []venueReviews
	for _, venue := range venues {
		if len(venue.Reviews) == 0 {
			continue
		}

		top := venue.Reviews
		if len(top) > reviewsPerVenue {
			top = top[:reviewsPerVenue]
		}

		var texts []string
		for _, review := range top {
			if review.Text == "" {
				continue
			}
			texts = append(texts, fmt.Sprintf("Rating: %d/5\n%s", review.Rating, review.Text))
		}

		if len(texts) > 0 {
			simplified = append(simplified, venueReviews{
				Name:    venue.Name,
				Reviews: texts,
			})
		}
	}

	if len(simplified) == 0 {
		return "", false, nil
	}

	payload, err := json.MarshalIndent(simplified, "", "  ")
	if err != nil {
		return "", false, err
	}
	return string(payload), true, nil
}

// stripCodeFences removes a surrounding markdown code block, which the
// capability sometimes adds despite instructions
func stripCodeFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.Trim(trimmed, "`")
	trimmed = strings.TrimPrefix(trimmed, "json")
	return strings.TrimSpace(trimmed)
}
