package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"claimbot/internal/apperr"
	"claimbot/internal/config"
	"claimbot/internal/models"

	"github.com/hashicorp/go-retryablehttp"
)

// DistanceClient talks to the external distance/geocoding provider. It is
// deliberately dumb: one endpoint, kilometers in the response, and a hard
// split between "route not found" and "provider down" so the calculators
// never have to guess.
type DistanceClient struct {
	baseURL string
	apiKey  string
	c       *http.Client
}

func NewDistanceClient(cfg *config.Config) *DistanceClient {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	return &DistanceClient{
		baseURL: cfg.DistanceAPIURL,
		apiKey:  cfg.DistanceAPIKey,
		c:       retryClient.StandardClient(),
	}
}

type distanceResponse struct {
	Status     string  `json:"status"`
	DistanceKM float64 `json:"distanceKm"`
	Message    string  `json:"message"`
}

func locationParam(loc models.Location) string {
	if loc.Address != "" {
		return loc.Address
	}
	return strconv.FormatFloat(loc.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(loc.Lng, 'f', 6, 64)
}

// DistanceKM implements calc.DistanceProvider.
func (d *DistanceClient) DistanceKM(ctx context.Context, from, to models.Location) (float64, error) {
	if d.baseURL == "" {
		return 0, fmt.Errorf("%w: distance provider URL is not configured", apperr.ErrConfiguration)
	}

	params := url.Values{}
	params.Set("origin", locationParam(from))
	params.Set("destination", locationParam(to))
	if d.apiKey != "" {
		params.Set("key", d.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/distance?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", apperr.ErrProvider, err)
	}

	resp, err := d.c.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: distance lookup failed: %s", apperr.ErrProvider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: reading distance response: %s", apperr.ErrProvider, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%w: no route between the given locations", apperr.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: distance provider returned status %d", apperr.ErrProvider, resp.StatusCode)
	}

	var parsed distanceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("%w: malformed distance response: %s", apperr.ErrProvider, err)
	}

	switch parsed.Status {
	case "OK":
		return parsed.DistanceKM, nil
	case "NOT_FOUND", "ZERO_RESULTS":
		return 0, fmt.Errorf("%w: no route between the given locations", apperr.ErrNotFound)
	default:
		return 0, fmt.Errorf("%w: distance provider status %q", apperr.ErrProvider, parsed.Status)
	}
}
