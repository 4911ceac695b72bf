package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate: a named itinerary plus summary metadata.
// ID is either a locally generated temporary id ("trip_" prefix) or the
// identifier assigned by the remote store. Once the store assigns an id it
// becomes canonical and all cache keys are rewritten to use it.
type Trip struct {
	ID           string `json:"id,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	Name         string `json:"trip_name"`
	Country      string `json:"country,omitempty"`
	CountryLabel string `json:"country_label,omitempty"`
	StartDate    string `json:"start_date,omitempty"` // "2006-01-02"
	EndDate      string `json:"end_date,omitempty"`
	DaysCount    int    `json:"days_count,omitempty"`
	Days         []Day  `json:"itinerary"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// TripSummary is the per-user trip index entry: metadata only, no
// itinerary body. LocalOnly marks trips whose last explicit save never
// reached the remote store.
type TripSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Country      string `json:"country,omitempty"`
	CountryLabel string `json:"countryLabel,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Days         int    `json:"days"`
	LastUpdated  string `json:"lastUpdated"`
	LocalOnly    bool   `json:"localOnly,omitempty"`
}

// NewTempTripID generates a temporary client-side trip identifier.
// The "trip_" prefix distinguishes it from store-assigned ids so the
// save path knows whether to create or update.
func NewTempTripID() string {
	return fmt.Sprintf("trip_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// IsTempTripID reports whether id was generated locally by NewTempTripID
// rather than assigned by the remote store.
func IsTempTripID(id string) bool {
	return strings.HasPrefix(id, "trip_")
}
