package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	searchNearbyBaseURL = "https://places.googleapis.com/v1/places:searchNearby"
	searchNearbyTimeout = 15 * time.Second

	// Page size asked of the provider; filtering happens on our side
	maxResultCount = 20

	fieldMask = "places.id,places.displayName,places.formattedAddress," +
		"places.location,places.rating,places.userRatingCount," +
		"places.priceLevel,places.googleMapsUri,places.types," +
		"places.reviews,places.editorialSummary"
)

// GoogleClient searches the Google Places API (New) nearby endpoint
type GoogleClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// GoogleConfig holds configuration for the Google places client
type GoogleConfig struct {
	// APIKey is the Google Maps API key
	APIKey string

	// BaseURL overrides the API endpoint, for tests
	BaseURL string
}

type searchNearbyRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	RankPreference      string   `json:"rankPreference"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type searchNearbyResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
		Location         struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		Rating          float64  `json:"rating"`
		UserRatingCount int      `json:"userRatingCount"`
		PriceLevel      string   `json:"priceLevel"`
		GoogleMapsURI   string   `json:"googleMapsUri"`
		Types           []string `json:"types"`
		Reviews         []struct {
			Rating int `json:"rating"`
			Text   struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"reviews"`
		EditorialSummary struct {
			Text string `json:"text"`
		} `json:"editorialSummary"`
	} `json:"places"`
}

// NewGoogle creates a new Google Places client
func NewGoogle(cfg *GoogleConfig) (*GoogleClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = searchNearbyBaseURL
	}

	return &GoogleClient{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: searchNearbyTimeout},
	}, nil
}

// Search returns venue facts within radius meters of the center
func (c *GoogleClient) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	reqBody := searchNearbyRequest{
		IncludedTypes:  input.Categories,
		MaxResultCount: maxResultCount,
		RankPreference: "POPULARITY",
	}
	reqBody.LocationRestriction.Circle.Center.Latitude = input.Center.Lat
	reqBody.LocationRestriction.Circle.Center.Longitude = input.Center.Lng
	reqBody.LocationRestriction.Circle.Radius = input.RadiusMeters

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", ErrSearchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSearchFailed, resp.StatusCode, detail)
	}

	var body searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrSearchFailed, err)
	}

	venues := make([]*VenueFact, 0, len(body.Places))
	for _, place := range body.Places {
		fact := &VenueFact{
			PlaceID:          place.ID,
			Name:             place.DisplayName.Text,
			Address:          place.FormattedAddress,
			Rating:           place.Rating,
			UserRatingCount:  place.UserRatingCount,
			PriceLevel:       place.PriceLevel,
			MapsURI:          place.GoogleMapsURI,
			Types:            place.Types,
			EditorialSummary: place.EditorialSummary.Text,
		}
		fact.Location.Lat = place.Location.Latitude
		fact.Location.Lng = place.Location.Longitude

		for _, review := range place.Reviews {
			fact.Reviews = append(fact.Reviews, Review{
				Rating: review.Rating,
				Text:   review.Text.Text,
			})
		}

		venues = append(venues, fact)
	}

	return &SearchOutput{Venues: venues}, nil
}
