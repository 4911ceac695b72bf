// Package domain contains the core data types for the TripWise planner.
// It has no dependencies on other internal packages and is imported by
// every layer (planner, views, cache, remote, service, handler).
package domain

import (
	"fmt"
	"time"
)

// Day is one calendar day of a trip, holding an ordered list of activities.
// Number is 1-based and contiguous across the itinerary; it is re-derived
// after any structural change, never trusted from input.
type Day struct {
	Number     int          `json:"day"`
	Title      string       `json:"title"`
	City       string       `json:"city,omitempty"`
	Date       string       `json:"date,omitempty"` // "2006-01-02"
	Coords     *Coordinates `json:"coords,omitempty"`
	Activities []Activity   `json:"activities"`
}

// NewDay constructs a Day with defaults applied: a "Day {n}" title when
// none is given and a non-nil empty activity list.
func NewDay(number int, city, title string, coords *Coordinates, date string) Day {
	if title == "" {
		title = fmt.Sprintf("Day %d", number)
	}
	return Day{
		Number:     number,
		Title:      title,
		City:       city,
		Date:       date,
		Coords:     coords,
		Activities: []Activity{},
	}
}

// Renumber re-derives the 1-based contiguous day numbers in place.
// Invariant: days[i].Number == i+1 for all i.
func Renumber(days []Day) {
	for i := range days {
		days[i].Number = i + 1
	}
}

// AssignDates assigns sequential dates to days starting from start,
// one day apart in itinerary order. Unparseable dates are a no-op —
// the itinerary keeps whatever dates it had.
func AssignDates(days []Day, start, end string) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		return
	}
	for i := range days {
		days[i].Date = s.AddDate(0, 0, i).Format("2006-01-02")
	}
}

// Normalize repairs an itinerary loaded from the cache or the remote
// store: day numbers are re-derived, nil activity slices become empty,
// and activities missing an id (data written before ids existed) get one.
// Existing ids are never touched.
func Normalize(days []Day) {
	Renumber(days)
	for i := range days {
		if days[i].Activities == nil {
			days[i].Activities = []Activity{}
		}
		for j := range days[i].Activities {
			if days[i].Activities[j].ID == "" {
				days[i].Activities[j].ID = NewActivityID()
			}
		}
	}
}
