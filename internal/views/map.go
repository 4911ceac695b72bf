// Package views computes the derived read models of an itinerary: the map
// marker/route view and the per-currency budget breakdown. Builders are
// pure functions recomputed wholesale after every mutation — never patched
// incrementally — so a view can never drift from the working copy.
package views

import (
	"fmt"

	"tripwise/internal/domain"
)

// GroupMode selects what a map marker represents.
type GroupMode int

const (
	// GroupByDay groups days by city into one marker per city, labelled
	// with the inclusive day range spent there.
	GroupByDay GroupMode = iota
	// GroupByActivity emits one marker per geocoded activity.
	GroupByActivity
)

// Marker is a single map pin.
type Marker struct {
	// Name is the marker headline: the city (day grouping) or the
	// activity name (activity grouping).
	Name string
	// Label is the secondary line: "Day 2" / "Day 1-3" for day grouping,
	// the activity type for activity grouping.
	Label string
	// Detail is extra popup text (activity location), empty for day pins.
	Detail string
	Coords domain.Coordinates
}

// MapView is the full derived map state: markers, the visit-order route,
// and how the viewport should frame them.
type MapView struct {
	Markers []Marker
	// Route holds the polyline waypoints in first-appearance order.
	// Nil unless there are at least two markers.
	Route []domain.Coordinates
	// FitBounds is true when the viewport should be fitted to Route's
	// bounds; otherwise Center/Zoom position the map.
	FitBounds bool
	Center    domain.Coordinates
	Zoom      int
}

// MapOptions carries the fallback viewport used when the itinerary has no
// mappable locations, typically the selected country's map defaults.
type MapOptions struct {
	Mode   GroupMode
	Center domain.Coordinates
	Zoom   int
}

// Zoom levels mirror the planner UI: world overview for an empty map,
// city level when centering on a single location.
const (
	defaultWorldZoom = 2
	singleCityZoom   = 10
)

// BuildMapView derives the map view from the itinerary. Grouping order is
// first appearance in the itinerary, not geographic; the route connects
// markers in that order. With one marker the map centers on it; with none
// it falls back to opts (or a default world view).
func BuildMapView(days []domain.Day, opts MapOptions) MapView {
	var markers []Marker
	switch opts.Mode {
	case GroupByActivity:
		markers = activityMarkers(days)
	default:
		markers = cityMarkers(days)
	}

	switch len(markers) {
	case 0:
		center := opts.Center
		zoom := opts.Zoom
		if zoom == 0 {
			center = domain.Coordinates{Lat: 20, Lng: 0}
			zoom = defaultWorldZoom
		}
		return MapView{Markers: []Marker{}, Center: center, Zoom: zoom}
	case 1:
		return MapView{Markers: markers, Center: markers[0].Coords, Zoom: singleCityZoom}
	}

	route := make([]domain.Coordinates, len(markers))
	for i, m := range markers {
		route[i] = m.Coords
	}
	return MapView{Markers: markers, Route: route, FitBounds: true}
}

// cityMarkers groups days that have both a city and coordinates by city
// name, in first-appearance order. Each marker keeps the first day's
// coordinates and is labelled with the inclusive range of day numbers.
func cityMarkers(days []domain.Day) []Marker {
	type cityGroup struct {
		coords domain.Coordinates
		min    int
		max    int
	}
	groups := map[string]*cityGroup{}
	var order []string

	for _, d := range days {
		if d.City == "" || d.Coords == nil {
			continue
		}
		g, ok := groups[d.City]
		if !ok {
			groups[d.City] = &cityGroup{coords: *d.Coords, min: d.Number, max: d.Number}
			order = append(order, d.City)
			continue
		}
		if d.Number < g.min {
			g.min = d.Number
		}
		if d.Number > g.max {
			g.max = d.Number
		}
	}

	markers := make([]Marker, 0, len(order))
	for _, city := range order {
		g := groups[city]
		label := fmt.Sprintf("Day %d", g.min)
		if g.max > g.min {
			label = fmt.Sprintf("Day %d-%d", g.min, g.max)
		}
		markers = append(markers, Marker{Name: city, Label: label, Coords: g.coords})
	}
	return markers
}

// activityMarkers emits one marker per activity that has coordinates,
// in schedule order.
func activityMarkers(days []domain.Day) []Marker {
	var markers []Marker
	for _, d := range days {
		for _, a := range d.Activities {
			if a.Coords == nil {
				continue
			}
			markers = append(markers, Marker{
				Name:   a.Name,
				Label:  string(a.Type),
				Detail: a.Location,
				Coords: *a.Coords,
			})
		}
	}
	return markers
}
