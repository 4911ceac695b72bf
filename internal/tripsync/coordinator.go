// Package tripsync coordinates the three persistence tiers of a planner
// session: the in-memory working copy, the local cache, and the remote
// trip store. The remote store is authoritative when reachable; the
// cache is the durable fallback and the auto-save target.
package tripsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripwise/internal/cache"
	"tripwise/internal/domain"
	"tripwise/internal/planner"
)

// LoadState names the source a planner session was seeded from.
type LoadState int

const (
	// Loaded means the trip came from the remote store.
	Loaded LoadState = iota
	// LoadedFromCache means the remote store was skipped or unreachable
	// and the local cache supplied the itinerary (saved copy or draft).
	LoadedFromCache
	// LoadedFromTemplate means a predefined country template seeded the
	// session.
	LoadedFromTemplate
	// Initialized means a fresh single-day itinerary was created.
	Initialized
	// NotFound means the route named a trip that neither tier has.
	NotFound
)

func (s LoadState) String() string {
	switch s {
	case Loaded:
		return "loaded"
	case LoadedFromCache:
		return "loaded_from_cache"
	case LoadedFromTemplate:
		return "loaded_from_template"
	case Initialized:
		return "initialized"
	case NotFound:
		return "not_found"
	default:
		return fmt.Sprintf("LoadState(%d)", int(s))
	}
}

// RemoteStore is the slice of the trip store client the coordinator uses.
// *remote.Client satisfies it.
type RemoteStore interface {
	CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	ListTrips(ctx context.Context, userID string) ([]domain.TripSummary, error)
}

// AuthProvider resolves the authenticated user. A (nil, nil) return means
// no one is signed in.
type AuthProvider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// Namer asks the user to name a trip before its first save. suggestion is
// the pre-filled default; ok=false means the user cancelled.
type Namer interface {
	Name(ctx context.Context, suggestion string) (name string, ok bool)
}

// NamerFunc adapts a function to the Namer interface.
type NamerFunc func(ctx context.Context, suggestion string) (string, bool)

func (f NamerFunc) Name(ctx context.Context, suggestion string) (string, bool) {
	return f(ctx, suggestion)
}

// LoadResult is the seed for a new planner session plus where it came from.
// Session carries data fields only; the caller supplies the geocoder and
// the mutate hook before constructing the Session.
type LoadResult struct {
	State   LoadState
	Session planner.Config
}

// SaveResult reports where an explicit save landed. Remote is false when
// the trip store was unreachable and the save degraded to cache-only.
type SaveResult struct {
	TripID string
	Remote bool
}

// Coordinator implements the load and save flows over the cache and the
// remote store. Zero-value Logger defaults to slog.Default.
type Coordinator struct {
	cache  cache.Store
	remote RemoteStore
	auth   AuthProvider
	namer  Namer
	log    *slog.Logger
}

// New constructs a Coordinator.
func New(store cache.Store, remote RemoteStore, auth AuthProvider, namer Namer, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{cache: store, remote: remote, auth: auth, namer: namer, log: log}
}

// Load resolves the route to an itinerary, trying tiers in priority order.
//
// With a trip id: remote store first, mirroring a hit into the cache;
// on remote failure the cached copy; NotFound when neither has it.
// Without one: an unsaved draft for the mode, then the mode's template,
// then a fresh single-day itinerary.
func (c *Coordinator) Load(ctx context.Context, route planner.RouteParams) (LoadResult, error) {
	route = route.Normalize()

	if route.HasTrip() {
		return c.loadTrip(ctx, route)
	}

	mode := route.Mode
	if mode == "" {
		mode = "blank"
	}
	cfg, _ := planner.LookupMode(mode)

	base := planner.Config{
		Mode:         mode,
		Country:      route.Country,
		CountryLabel: route.CountryLabel,
		StartDate:    route.StartDate,
		EndDate:      route.EndDate,
		Currency:     cfg.Currency,
		MapCenter:    cfg.MapCenter,
		MapZoom:      cfg.MapZoom,
	}

	var draft domain.Trip
	found, err := c.cache.Get(ctx, cache.DraftKey(mode), &draft)
	if err != nil {
		c.log.Warn("draft lookup failed", "mode", mode, "error", err)
	}
	if found && len(draft.Days) > 0 {
		base.TripName = draft.Name
		base.Days = draft.Days
		return LoadResult{State: LoadedFromCache, Session: base}, nil
	}

	base.Days = cfg.TemplateDays(route.StartDate, route.EndDate)
	if len(cfg.Template) > 0 {
		return LoadResult{State: LoadedFromTemplate, Session: base}, nil
	}
	return LoadResult{State: Initialized, Session: base}, nil
}

// loadTrip is the saved-trip branch of Load: remote first, cache fallback.
func (c *Coordinator) loadTrip(ctx context.Context, route planner.RouteParams) (LoadResult, error) {
	trip, err := c.remote.GetTrip(ctx, route.TripID)
	if err == nil {
		if cerr := c.cache.Set(ctx, cache.ItineraryKey(trip.ID), trip); cerr != nil {
			c.log.Warn("cache mirror failed", "trip_id", trip.ID, "error", cerr)
		}
		return LoadResult{State: Loaded, Session: sessionFromTrip(trip)}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		c.log.Warn("remote load failed, trying cache", "trip_id", route.TripID, "error", err)
	}

	var cached domain.Trip
	found, cerr := c.cache.Get(ctx, cache.ItineraryKey(route.TripID), &cached)
	if cerr != nil {
		c.log.Warn("cache load failed", "trip_id", route.TripID, "error", cerr)
	}
	if found {
		return LoadResult{State: LoadedFromCache, Session: sessionFromTrip(cached)}, nil
	}
	return LoadResult{State: NotFound}, nil
}

// AutoSave persists the working copy to the cache only, best-effort. It
// is wired as the session's mutate hook, so it must never surface errors
// into the mutation path.
func (c *Coordinator) AutoSave(ctx context.Context, s *planner.Session) {
	var key string
	if id := s.TripID(); id != "" {
		key = cache.ItineraryKey(id)
	} else {
		mode := s.Mode()
		if mode == "" {
			mode = "blank"
		}
		key = cache.DraftKey(mode)
	}
	if err := c.cache.Set(ctx, key, tripFromSession(s, "")); err != nil {
		c.log.Warn("auto-save failed", "key", key, "error", err)
	}
}

// Save explicitly persists the working copy: remote store first, cache
// always. Returns ErrAuthRequired without a signed-in user,
// ErrEmptyItinerary for an empty working copy, and ErrCancelled when the
// user abandons the naming prompt (leaving all state untouched). A
// reachable remote assigns the canonical id, which replaces any temporary
// id in the session and the cache. An unreachable remote degrades to a
// cache-only save marked local-only in the user's trip index — that is a
// successful save, not an error.
func (c *Coordinator) Save(ctx context.Context, s *planner.Session) (SaveResult, error) {
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("tripsync.Coordinator.Save: %w", err)
	}
	if user == nil {
		return SaveResult{}, domain.ErrAuthRequired
	}
	if len(s.Days()) == 0 {
		return SaveResult{}, domain.ErrEmptyItinerary
	}

	mode := s.Mode()
	if mode == "" {
		mode = "blank"
	}

	if s.TripID() == "" {
		suggestion := s.TripName()
		if suggestion == "" {
			suggestion = defaultTripName(s)
		}
		name, ok := c.namer.Name(ctx, suggestion)
		if !ok {
			return SaveResult{}, domain.ErrCancelled
		}
		if strings.TrimSpace(name) == "" {
			name = suggestion
		}
		s.SetTripName(strings.TrimSpace(name))
		s.SetTripID(domain.NewTempTripID())
	}

	trip := tripFromSession(s, user.ID.String())

	saved, rerr := c.saveRemote(ctx, trip)
	if rerr != nil {
		c.log.Warn("remote save failed, keeping local copy", "trip_id", trip.ID, "error", rerr)
		if err := c.cache.Set(ctx, cache.ItineraryKey(trip.ID), trip); err != nil {
			return SaveResult{}, fmt.Errorf("tripsync.Coordinator.Save: %w", err)
		}
		c.upsertSummary(ctx, user.Key(), summaryFromTrip(trip, true))
		return SaveResult{TripID: trip.ID, Remote: false}, nil
	}

	oldID := trip.ID
	s.SetTripID(saved.ID)
	if err := c.cache.Set(ctx, cache.ItineraryKey(saved.ID), saved); err != nil {
		c.log.Warn("cache write failed after remote save", "trip_id", saved.ID, "error", err)
	}
	if oldID != saved.ID {
		if err := c.cache.Del(ctx, cache.ItineraryKey(oldID)); err != nil {
			c.log.Warn("stale cache key removal failed", "trip_id", oldID, "error", err)
		}
	}
	if err := c.cache.Del(ctx, cache.DraftKey(mode)); err != nil {
		c.log.Warn("draft removal failed", "mode", mode, "error", err)
	}
	c.upsertSummary(ctx, user.Key(), summaryFromTrip(saved, false))

	return SaveResult{TripID: saved.ID, Remote: true}, nil
}

// saveRemote creates on first save (temporary id) and updates thereafter.
func (c *Coordinator) saveRemote(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if domain.IsTempTripID(trip.ID) {
		t := trip
		t.ID = "" // the store assigns the canonical id
		return c.remote.CreateTrip(ctx, t)
	}
	return c.remote.UpdateTrip(ctx, trip)
}

// ListTrips returns the user's trip index: the remote index when
// reachable (mirrored to the cache), otherwise the cached one.
func (c *Coordinator) ListTrips(ctx context.Context, user domain.User) ([]domain.TripSummary, error) {
	summaries, err := c.remote.ListTrips(ctx, user.ID.String())
	if err == nil {
		if cerr := c.cache.Set(ctx, cache.TripsKey(user.Key()), summaries); cerr != nil {
			c.log.Warn("trip index mirror failed", "user", user.Key(), "error", cerr)
		}
		return summaries, nil
	}
	c.log.Warn("remote trip index failed, trying cache", "user", user.Key(), "error", err)

	var cached []domain.TripSummary
	found, cerr := c.cache.Get(ctx, cache.TripsKey(user.Key()), &cached)
	if cerr != nil {
		return nil, fmt.Errorf("tripsync.Coordinator.ListTrips: %w", cerr)
	}
	if !found {
		return []domain.TripSummary{}, nil
	}
	return cached, nil
}

// upsertSummary rewrites one entry of the user's cached trip index,
// best-effort.
func (c *Coordinator) upsertSummary(ctx context.Context, userKey string, entry domain.TripSummary) {
	key := cache.TripsKey(userKey)

	var index []domain.TripSummary
	if _, err := c.cache.Get(ctx, key, &index); err != nil {
		c.log.Warn("trip index read failed", "user", userKey, "error", err)
		return
	}

	replaced := false
	for i := range index {
		if index[i].ID == entry.ID {
			index[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		index = append([]domain.TripSummary{entry}, index...)
	}

	if err := c.cache.Set(ctx, key, index); err != nil {
		c.log.Warn("trip index write failed", "user", userKey, "error", err)
	}
}

// sessionFromTrip seeds a session config from a stored trip. Map defaults
// come from the trip's country when it names a registered template.
func sessionFromTrip(trip domain.Trip) planner.Config {
	cfg, _ := planner.LookupMode(trip.Country)
	return planner.Config{
		TripID:       trip.ID,
		TripName:     trip.Name,
		Mode:         cfg.Mode,
		Country:      trip.Country,
		CountryLabel: trip.CountryLabel,
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
		Currency:     cfg.Currency,
		Days:         trip.Days,
		MapCenter:    cfg.MapCenter,
		MapZoom:      cfg.MapZoom,
	}
}

// tripFromSession snapshots the working copy into the wire/cache form.
func tripFromSession(s *planner.Session, userID string) domain.Trip {
	return domain.Trip{
		ID:           s.TripID(),
		UserID:       userID,
		Name:         s.TripName(),
		Country:      s.Country(),
		CountryLabel: s.CountryLabel(),
		StartDate:    s.StartDate(),
		EndDate:      s.EndDate(),
		DaysCount:    len(s.Days()),
		Days:         s.Days(),
	}
}

func summaryFromTrip(trip domain.Trip, localOnly bool) domain.TripSummary {
	updated := trip.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	return domain.TripSummary{
		ID:           trip.ID,
		Title:        trip.Name,
		Country:      trip.Country,
		CountryLabel: trip.CountryLabel,
		StartDate:    trip.StartDate,
		EndDate:      trip.EndDate,
		Days:         trip.DaysCount,
		LastUpdated:  updated.Format(time.RFC3339),
		LocalOnly:    localOnly,
	}
}

// defaultTripName builds the naming-prompt suggestion from the session's
// destination and day count.
func defaultTripName(s *planner.Session) string {
	label := s.CountryLabel()
	if label == "" {
		label = s.Country()
	}
	if label == "" {
		label = "My Trip"
	}
	return fmt.Sprintf("%s (%d days)", label, len(s.Days()))
}
