// Package remote is the HTTP client for the trip store API — the
// authoritative server-side tier of the persistence stack. It speaks the
// same contract internal/handler serves: POST /api/trips, PUT
// /api/trip/{id}, GET /api/trip/{id}, GET /api/trips/{userId}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripwise/internal/domain"
)

// Client talks to one trip store instance. A zero timeout would let a
// hanging request hold the save path open forever, so the HTTP client
// always carries one.
type Client struct {
	base string
	hc   *http.Client
}

// New constructs a Client for the trip store at base
// (e.g. "http://localhost:3000"). timeout <= 0 defaults to 15s.
func New(base string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{base: base, hc: &http.Client{Timeout: timeout}}
}

// errorBody is the store's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// CreateTrip saves a new trip and returns the stored record with the
// server-assigned id.
func (c *Client) CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return c.sendTrip(ctx, http.MethodPost, c.base+"/api/trips", trip)
}

// UpdateTrip overwrites the trip with the given canonical id.
// Returns domain.ErrNotFound if the store has no such trip.
func (c *Client) UpdateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	u := fmt.Sprintf("%s/api/trip/%s", c.base, url.PathEscape(trip.ID))
	return c.sendTrip(ctx, http.MethodPut, u, trip)
}

// GetTrip fetches a single trip with its full itinerary.
// Returns domain.ErrNotFound for an unknown id.
func (c *Client) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	u := fmt.Sprintf("%s/api/trip/%s", c.base, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client.GetTrip: %w", err)
	}

	var trip domain.Trip
	if err := c.do(req, &trip); err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client.GetTrip: %w", err)
	}
	return trip, nil
}

// ListTrips fetches the summary index for one user, newest first.
func (c *Client) ListTrips(ctx context.Context, userID string) ([]domain.TripSummary, error) {
	u := fmt.Sprintf("%s/api/trips/%s", c.base, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("remote.Client.ListTrips: %w", err)
	}

	var summaries []domain.TripSummary
	if err := c.do(req, &summaries); err != nil {
		return nil, fmt.Errorf("remote.Client.ListTrips: %w", err)
	}
	if summaries == nil {
		summaries = []domain.TripSummary{}
	}
	return summaries, nil
}

// sendTrip marshals trip as the request body and decodes the stored
// record from the response.
func (c *Client) sendTrip(ctx context.Context, method, u string, trip domain.Trip) (domain.Trip, error) {
	body, err := json.Marshal(trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client: encode trip: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var stored domain.Trip
	if err := c.do(req, &stored); err != nil {
		return domain.Trip{}, fmt.Errorf("remote.Client: %w", err)
	}
	return stored, nil
}

// do executes the request and decodes a 2xx JSON body into out.
// 404 maps to domain.ErrNotFound; other non-2xx statuses surface the
// store's error message when one is present.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var eb errorBody
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(b, &eb) == nil && eb.Error != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, eb.Error)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
