// Package cache is the local durable tier of the persistence stack: a
// string-keyed store holding JSON-serialized values that survive planner
// restarts. The persistence coordinator writes every mutation here
// (auto-save) and falls back to it when the remote store is unreachable.
package cache

import "context"

// Store is the contract the persistence coordinator depends on.
// Get reports (false, nil) on a missing key so callers can distinguish
// "not cached" from a real failure.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Del(ctx context.Context, key string) error
}

// Key layout. The itinerary body and the per-user summary index are kept
// under separate keys so the trip list can load without itinerary bodies.
const (
	// CurrentUserKey holds the authenticated user object. Written by the
	// auth flow; the planner only reads it.
	CurrentUserKey = "currentUser"

	itineraryPrefix = "itinerary:"
	tripsPrefix     = "trips:"
	draftPrefix     = "draft:"
)

// ItineraryKey returns the cache key for a trip's full itinerary body.
func ItineraryKey(tripID string) string { return itineraryPrefix + tripID }

// TripsKey returns the cache key for a user's trip summary index.
func TripsKey(userKey string) string { return tripsPrefix + userKey }

// DraftKey returns the cache key for the unsaved working draft of a
// planner mode namespace ("japan", "blank", ...).
func DraftKey(mode string) string { return draftPrefix + mode }
