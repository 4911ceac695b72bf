package tripsync

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/cache"
	"tripwise/internal/domain"
	"tripwise/internal/planner"
)

type mockRemote struct {
	CreateTripFunc func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	UpdateTripFunc func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetTripFunc    func(ctx context.Context, id string) (domain.Trip, error)
	ListTripsFunc  func(ctx context.Context, userID string) ([]domain.TripSummary, error)
}

var _ RemoteStore = (*mockRemote)(nil)

func (m *mockRemote) CreateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.CreateTripFunc(ctx, trip)
}

func (m *mockRemote) UpdateTrip(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.UpdateTripFunc(ctx, trip)
}

func (m *mockRemote) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	return m.GetTripFunc(ctx, id)
}

func (m *mockRemote) ListTrips(ctx context.Context, userID string) ([]domain.TripSummary, error) {
	return m.ListTripsFunc(ctx, userID)
}

// downRemote fails every call, simulating an unreachable trip store.
func downRemote() *mockRemote {
	err := errors.New("connection refused")
	return &mockRemote{
		CreateTripFunc: func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, err },
		UpdateTripFunc: func(context.Context, domain.Trip) (domain.Trip, error) { return domain.Trip{}, err },
		GetTripFunc:    func(context.Context, string) (domain.Trip, error) { return domain.Trip{}, err },
		ListTripsFunc:  func(context.Context, string) ([]domain.TripSummary, error) { return nil, err },
	}
}

func acceptName(name string) Namer {
	return NamerFunc(func(ctx context.Context, suggestion string) (string, bool) {
		return name, true
	})
}

func cancelName() Namer {
	return NamerFunc(func(ctx context.Context, suggestion string) (string, bool) {
		return "", false
	})
}

func testStore(t *testing.T) cache.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedis(mr.Addr(), "", 0)
}

func testUser() domain.User {
	return domain.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
}

func signedIn(t *testing.T, store cache.Store) *CacheAuth {
	t.Helper()
	auth := NewCacheAuth(store)
	require.NoError(t, auth.SignIn(context.Background(), testUser()))
	return auth
}

func sampleDays() []domain.Day {
	return []domain.Day{
		domain.NewDay(1, "Tokyo", "Arrival", &domain.Coordinates{Lat: 35.68, Lng: 139.65}, "2026-04-01"),
		domain.NewDay(2, "Kyoto", "Temples", &domain.Coordinates{Lat: 35.01, Lng: 135.76}, "2026-04-02"),
	}
}

func TestCoordinatorLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("remote trip wins and is mirrored to cache", func(t *testing.T) {
		store := testStore(t)
		stale := domain.Trip{ID: "abc", Name: "Stale", Days: sampleDays()[:1]}
		require.NoError(t, store.Set(ctx, cache.ItineraryKey("abc"), stale))

		remote := downRemote()
		remote.GetTripFunc = func(ctx context.Context, id string) (domain.Trip, error) {
			return domain.Trip{ID: id, Name: "Fresh", Country: "japan", Days: sampleDays()}, nil
		}
		c := New(store, remote, NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{TripID: "abc"})
		require.NoError(t, err)

		assert.Equal(t, Loaded, res.State)
		assert.Equal(t, "Fresh", res.Session.TripName)
		assert.Equal(t, "JPY", res.Session.Currency)
		assert.Len(t, res.Session.Days, 2)

		var mirrored domain.Trip
		found, err := store.Get(ctx, cache.ItineraryKey("abc"), &mirrored)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Fresh", mirrored.Name)
	})

	t.Run("cache fallback when remote is down", func(t *testing.T) {
		store := testStore(t)
		cached := domain.Trip{ID: "abc", Name: "Offline Copy", Days: sampleDays()}
		require.NoError(t, store.Set(ctx, cache.ItineraryKey("abc"), cached))

		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{TripID: "abc"})
		require.NoError(t, err)

		assert.Equal(t, LoadedFromCache, res.State)
		assert.Equal(t, "Offline Copy", res.Session.TripName)
	})

	t.Run("not found when neither tier has the trip", func(t *testing.T) {
		store := testStore(t)
		remote := downRemote()
		remote.GetTripFunc = func(context.Context, string) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		}
		c := New(store, remote, NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{TripID: "ghost"})
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.State)
	})

	t.Run("template mode seeds template days", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{Mode: "Japan", StartDate: "2026-04-01", EndDate: "2026-04-07"})
		require.NoError(t, err)

		assert.Equal(t, LoadedFromTemplate, res.State)
		require.Len(t, res.Session.Days, 7)
		assert.Equal(t, "2026-04-01", res.Session.Days[0].Date)
		assert.Equal(t, "JPY", res.Session.Currency)
	})

	t.Run("draft takes precedence over template", func(t *testing.T) {
		store := testStore(t)
		draft := domain.Trip{Name: "WIP", Days: sampleDays()}
		require.NoError(t, store.Set(ctx, cache.DraftKey("japan"), draft))

		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{Mode: "japan"})
		require.NoError(t, err)

		assert.Equal(t, LoadedFromCache, res.State)
		assert.Equal(t, "WIP", res.Session.TripName)
		assert.Len(t, res.Session.Days, 2)
	})

	t.Run("no route context initializes a single day", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		res, err := c.Load(ctx, planner.RouteParams{})
		require.NoError(t, err)

		assert.Equal(t, Initialized, res.State)
		require.Len(t, res.Session.Days, 1)
		assert.Equal(t, "Day 1", res.Session.Days[0].Title)
		assert.Equal(t, "USD", res.Session.Currency)
	})
}

func TestCoordinatorAutoSave(t *testing.T) {
	ctx := context.Background()

	t.Run("draft key without a trip id", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{Mode: "japan", Days: sampleDays(), OnMutate: c.AutoSave})

		s.AddEmptyDay(ctx)

		var draft domain.Trip
		found, err := store.Get(ctx, cache.DraftKey("japan"), &draft)
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, draft.Days, 3)
	})

	t.Run("itinerary key once the trip has an id", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{TripID: "abc", Days: sampleDays(), OnMutate: c.AutoSave})

		s.AddEmptyDay(ctx)

		var trip domain.Trip
		found, err := store.Get(ctx, cache.ItineraryKey("abc"), &trip)
		require.NoError(t, err)
		require.True(t, found)
		assert.Len(t, trip.Days, 3)
	})
}

func TestCoordinatorSave(t *testing.T) {
	ctx := context.Background()

	t.Run("requires a signed-in user", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{Days: sampleDays()})

		_, err := c.Save(ctx, s)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("rejects an empty itinerary", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), signedIn(t, store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{})

		_, err := c.Save(ctx, s)
		assert.ErrorIs(t, err, domain.ErrEmptyItinerary)
	})

	t.Run("cancelled naming prompt leaves state untouched", func(t *testing.T) {
		store := testStore(t)
		remote := downRemote()
		c := New(store, remote, signedIn(t, store), cancelName(), nil)
		s := planner.NewSession(planner.Config{Days: sampleDays()})

		_, err := c.Save(ctx, s)
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.Empty(t, s.TripID())
		assert.Empty(t, s.TripName())
	})

	t.Run("first save creates and adopts the canonical id", func(t *testing.T) {
		store := testStore(t)
		var created domain.Trip
		remote := downRemote()
		remote.CreateTripFunc = func(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
			created = trip
			trip.ID = "db-42"
			return trip, nil
		}
		c := New(store, remote, signedIn(t, store), acceptName("Japan Spring"), nil)
		s := planner.NewSession(planner.Config{Mode: "japan", Days: sampleDays()})

		res, err := c.Save(ctx, s)
		require.NoError(t, err)

		assert.True(t, res.Remote)
		assert.Equal(t, "db-42", res.TripID)
		assert.Equal(t, "db-42", s.TripID())
		assert.Equal(t, "Japan Spring", s.TripName())
		assert.Empty(t, created.ID, "create must not carry the temporary id")
		assert.Equal(t, 2, created.DaysCount)

		var cached domain.Trip
		found, err := store.Get(ctx, cache.ItineraryKey("db-42"), &cached)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Japan Spring", cached.Name)

		var index []domain.TripSummary
		found, err = store.Get(ctx, cache.TripsKey("ada@example.com"), &index)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, index, 1)
		assert.Equal(t, "db-42", index[0].ID)
		assert.False(t, index[0].LocalOnly)
	})

	t.Run("resave of a canonical id updates instead of duplicating", func(t *testing.T) {
		store := testStore(t)
		var creates, updates int
		remote := downRemote()
		remote.UpdateTripFunc = func(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
			updates++
			return trip, nil
		}
		remote.CreateTripFunc = func(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
			creates++
			trip.ID = "db-42"
			return trip, nil
		}
		c := New(store, remote, signedIn(t, store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{TripID: "db-42", TripName: "Saved", Days: sampleDays()})

		res, err := c.Save(ctx, s)
		require.NoError(t, err)

		assert.True(t, res.Remote)
		assert.Equal(t, "db-42", res.TripID)
		assert.Equal(t, 1, updates)
		assert.Zero(t, creates)
	})

	t.Run("unreachable remote degrades to a local-only save", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), signedIn(t, store), acceptName("Offline Trip"), nil)
		s := planner.NewSession(planner.Config{Days: sampleDays()})

		res, err := c.Save(ctx, s)
		require.NoError(t, err)

		assert.False(t, res.Remote)
		assert.True(t, domain.IsTempTripID(res.TripID))
		assert.Equal(t, res.TripID, s.TripID())

		var cached domain.Trip
		found, err := store.Get(ctx, cache.ItineraryKey(res.TripID), &cached)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "Offline Trip", cached.Name)
		assert.Len(t, cached.Days, 2)

		var index []domain.TripSummary
		found, err = store.Get(ctx, cache.TripsKey("ada@example.com"), &index)
		require.NoError(t, err)
		require.True(t, found)
		require.Len(t, index, 1)
		assert.True(t, index[0].LocalOnly)
	})

	t.Run("save clears the mode draft and temp cache key", func(t *testing.T) {
		store := testStore(t)
		require.NoError(t, store.Set(ctx, cache.DraftKey("japan"), domain.Trip{Days: sampleDays()}))

		remote := downRemote()
		remote.CreateTripFunc = func(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
			trip.ID = "db-7"
			return trip, nil
		}
		c := New(store, remote, signedIn(t, store), acceptName("x"), nil)
		s := planner.NewSession(planner.Config{Mode: "japan", Days: sampleDays()})

		_, err := c.Save(ctx, s)
		require.NoError(t, err)

		var draft domain.Trip
		found, err := store.Get(ctx, cache.DraftKey("japan"), &draft)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestCoordinatorListTrips(t *testing.T) {
	ctx := context.Background()
	user := testUser()

	t.Run("remote index mirrored to cache", func(t *testing.T) {
		store := testStore(t)
		remote := downRemote()
		remote.ListTripsFunc = func(ctx context.Context, userID string) ([]domain.TripSummary, error) {
			assert.Equal(t, user.ID.String(), userID)
			return []domain.TripSummary{{ID: "db-1", Title: "Japan"}}, nil
		}
		c := New(store, remote, NewCacheAuth(store), acceptName("x"), nil)

		got, err := c.ListTrips(ctx, user)
		require.NoError(t, err)
		require.Len(t, got, 1)

		var cached []domain.TripSummary
		found, err := store.Get(ctx, cache.TripsKey(user.Key()), &cached)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "db-1", cached[0].ID)
	})

	t.Run("cache fallback when remote is down", func(t *testing.T) {
		store := testStore(t)
		require.NoError(t, store.Set(ctx, cache.TripsKey(user.Key()), []domain.TripSummary{{ID: "db-9", Title: "Cached"}}))

		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		got, err := c.ListTrips(ctx, user)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Cached", got[0].Title)
	})

	t.Run("empty when nothing anywhere", func(t *testing.T) {
		store := testStore(t)
		c := New(store, downRemote(), NewCacheAuth(store), acceptName("x"), nil)

		got, err := c.ListTrips(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestCacheAuth(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	auth := NewCacheAuth(store)

	u, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, auth.SignIn(ctx, testUser()))
	u, err = auth.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "ada@example.com", u.Email)

	require.NoError(t, auth.SignOut(ctx))
	u, err = auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}
