package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/cache"
	"tripwise/internal/domain"
)

func newStore(t *testing.T) *cache.Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	return cache.NewRedis(mr.Addr(), "", 0)
}

func TestRedis_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	days := []domain.Day{domain.NewDay(1, "Paris", "Arrival", nil, "2025-05-01")}
	require.NoError(t, s.Set(ctx, cache.ItineraryKey("trip_1"), days))

	var got []domain.Day
	ok, err := s.Get(ctx, cache.ItineraryKey("trip_1"), &got)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Paris", got[0].City)
	assert.Equal(t, "Arrival", got[0].Title)
}

func TestRedis_GetMissingKey(t *testing.T) {
	s := newStore(t)

	var got []domain.Day
	ok, err := s.Get(context.Background(), cache.ItineraryKey("absent"), &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Del(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Del(ctx, "k"))
	// deleting again is a no-op
	require.NoError(t, s.Del(ctx, "k"))

	var got string
	ok, err := s.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "k", []int{1}))
	require.NoError(t, s.Set(ctx, "k", []int{1, 2}))

	var got []int
	ok, err := s.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got)
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "itinerary:42", cache.ItineraryKey("42"))
	assert.Equal(t, "trips:ann@example.com", cache.TripsKey("ann@example.com"))
	assert.Equal(t, "draft:japan", cache.DraftKey("japan"))
	assert.Equal(t, "currentUser", cache.CurrentUserKey)
}
