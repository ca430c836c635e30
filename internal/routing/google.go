package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/meridianhq/meridian/internal/models"
)

const (
	distanceMatrixBaseURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	distanceMatrixTimeout = 10 * time.Second
)

// GoogleOracle queries the Google Distance Matrix API
type GoogleOracle struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// GoogleConfig holds configuration for the Google oracle
type GoogleConfig struct {
	// APIKey is the Google Maps API key
	APIKey string

	// BaseURL overrides the API endpoint, for tests
	BaseURL string
}

type distanceMatrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

// NewGoogle creates a new Google Distance Matrix oracle
func NewGoogle(cfg *GoogleConfig) (*GoogleOracle, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API key cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = distanceMatrixBaseURL
	}

	return &GoogleOracle{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: distanceMatrixTimeout},
	}, nil
}

// Query returns the travel time for one origin/destination pair
func (o *GoogleOracle) Query(ctx context.Context, input *QueryInput) (*QueryOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	mode := input.Mode
	if !mode.Valid() {
		mode = models.TravelModeTransit
	}

	params := url.Values{}
	params.Set("origins", fmt.Sprintf("%f,%f", input.Origin.Lat, input.Origin.Lng))
	params.Set("destinations", fmt.Sprintf("%f,%f", input.Destination.Lat, input.Destination.Lng))
	params.Set("mode", string(mode))
	params.Set("key", o.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrOracleUnavailable, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	var body distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrOracleUnavailable, err)
	}

	if body.Status != "OK" {
		return nil, fmt.Errorf("%w: %s %s", ErrOracleUnavailable, body.Status, body.ErrorMessage)
	}

	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrOracleUnavailable)
	}

	element := body.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
		// fall through
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, ErrNoRouteFound
	default:
		return nil, fmt.Errorf("%w: element status %s", ErrOracleUnavailable, element.Status)
	}

	if element.Duration.Value < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrOracleUnavailable)
	}

	return &QueryOutput{
		DurationSeconds: element.Duration.Value,
	}, nil
}
