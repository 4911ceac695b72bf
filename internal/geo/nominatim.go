// Package geo resolves free-text place names to coordinates via a
// Nominatim-compatible geocoding endpoint. Geocoding is best-effort
// everywhere it is used: callers treat a failure as "no coordinates",
// never as a reason to reject a mutation.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"tripwise/internal/domain"
)

// Geocoder resolves a place name to coordinates.
// A (nil, nil) result means the place was looked up but not found.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*domain.Coordinates, error)
}

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

// Client is a rate-limited Nominatim client. The public instance's usage
// policy caps clients at one request per second, so the limiter is not
// optional; self-hosted instances can raise rps.
type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

// New constructs a Client for the given base URL.
// An empty base falls back to the public instance; rps <= 0 falls back to 1.
func New(base string, rps float64) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 10 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// nominatimResult is the subset of the search response we read.
// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode looks up place and returns its coordinates, or (nil, nil) when
// the service has no match. Transport and decode failures are returned as
// errors for the caller to log and degrade.
func (c *Client) Geocode(ctx context.Context, place string) (*domain.Coordinates, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/search?format=json&q=%s&limit=1", c.base, url.QueryEscape(place))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Geocode: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "tripwise/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo.Client.Geocode: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geo.Client.Geocode: decode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Geocode: bad lat %q", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Geocode: bad lon %q", results[0].Lon)
	}

	return &domain.Coordinates{Lat: lat, Lng: lng}, nil
}
