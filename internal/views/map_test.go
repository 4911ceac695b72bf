package views_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/internal/domain"
	"tripwise/internal/views"
)

var (
	tokyo = domain.Coordinates{Lat: 35.6762, Lng: 139.6503}
	kyoto = domain.Coordinates{Lat: 35.0116, Lng: 135.7681}
)

func day(n int, city string, coords *domain.Coordinates) domain.Day {
	d := domain.NewDay(n, city, "", coords, "")
	return d
}

func TestBuildMapView_GroupsDaysByCity(t *testing.T) {
	days := []domain.Day{
		day(1, "Tokyo", &tokyo),
		day(2, "Tokyo", &tokyo),
		day(3, "Tokyo", &tokyo),
		day(4, "Kyoto", &kyoto),
	}

	mv := views.BuildMapView(days, views.MapOptions{})

	require.Len(t, mv.Markers, 2)
	assert.Equal(t, "Tokyo", mv.Markers[0].Name)
	assert.Equal(t, "Day 1-3", mv.Markers[0].Label)
	assert.Equal(t, "Kyoto", mv.Markers[1].Name)
	assert.Equal(t, "Day 4", mv.Markers[1].Label)
}

func TestBuildMapView_RouteFollowsFirstAppearance(t *testing.T) {
	osaka := domain.Coordinates{Lat: 34.6937, Lng: 135.5023}
	days := []domain.Day{
		day(1, "Tokyo", &tokyo),
		day(2, "Kyoto", &kyoto),
		day(3, "Osaka", &osaka),
		day(4, "Tokyo", &tokyo), // revisit must not reorder the route
	}

	mv := views.BuildMapView(days, views.MapOptions{})

	require.Len(t, mv.Route, 3)
	assert.True(t, mv.FitBounds)
	assert.Equal(t, []domain.Coordinates{tokyo, kyoto, osaka}, mv.Route)
	assert.Equal(t, "Day 1-4", mv.Markers[0].Label)
}

func TestBuildMapView_SingleCityCenters(t *testing.T) {
	days := []domain.Day{day(1, "Tokyo", &tokyo), day(2, "Tokyo", &tokyo)}

	mv := views.BuildMapView(days, views.MapOptions{})

	require.Len(t, mv.Markers, 1)
	assert.Nil(t, mv.Route)
	assert.False(t, mv.FitBounds)
	assert.Equal(t, tokyo, mv.Center)
	assert.Equal(t, 10, mv.Zoom)
}

func TestBuildMapView_EmptyUsesCountryDefaults(t *testing.T) {
	mv := views.BuildMapView(nil, views.MapOptions{
		Center: domain.Coordinates{Lat: 36.2048, Lng: 138.2529},
		Zoom:   6,
	})

	assert.Empty(t, mv.Markers)
	assert.Equal(t, 6, mv.Zoom)
	assert.Equal(t, 36.2048, mv.Center.Lat)
}

func TestBuildMapView_EmptyWorldFallback(t *testing.T) {
	mv := views.BuildMapView(nil, views.MapOptions{})

	assert.Equal(t, domain.Coordinates{Lat: 20, Lng: 0}, mv.Center)
	assert.Equal(t, 2, mv.Zoom)
}

func TestBuildMapView_SkipsUngeocodedDays(t *testing.T) {
	days := []domain.Day{
		day(1, "Tokyo", &tokyo),
		day(2, "Nara", nil), // geocode failed: no pin, not an error
		day(3, "", &kyoto),  // coordinates without a city are not a city pin
	}

	mv := views.BuildMapView(days, views.MapOptions{})

	require.Len(t, mv.Markers, 1)
	assert.Equal(t, "Tokyo", mv.Markers[0].Name)
}

func TestBuildMapView_ActivityMode(t *testing.T) {
	d := domain.NewDay(1, "Paris", "", nil, "")
	eiffel := domain.Coordinates{Lat: 48.8584, Lng: 2.2945}
	d.Activities = []domain.Activity{
		{ID: "a1", Name: "Eiffel Tower", Type: domain.TypeActivity, Location: "Champ de Mars", Coords: &eiffel},
		{ID: "a2", Name: "Dinner", Type: domain.TypeFood}, // no coords
	}

	mv := views.BuildMapView([]domain.Day{d}, views.MapOptions{Mode: views.GroupByActivity})

	require.Len(t, mv.Markers, 1)
	assert.Equal(t, "Eiffel Tower", mv.Markers[0].Name)
	assert.Equal(t, "Activity", mv.Markers[0].Label)
	assert.Equal(t, "Champ de Mars", mv.Markers[0].Detail)
}
