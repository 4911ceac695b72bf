package planner

import (
	"strings"

	"tripwise/internal/domain"
)

// DayTemplate seeds one day of a predefined itinerary.
type DayTemplate struct {
	City   string
	Title  string
	Coords domain.Coordinates
}

// CountryConfig is one entry of the template registry: a named multi-day
// itinerary plus the map defaults and currency for that destination.
type CountryConfig struct {
	Mode      string
	Title     string
	Currency  string
	MapCenter domain.Coordinates
	MapZoom   int
	Template  []DayTemplate
}

// registry holds the built-in planner modes. "blank" is the fallback for
// unknown modes and carries no template days.
var registry = map[string]CountryConfig{
	"japan": {
		Mode:      "japan",
		Title:     "Japan Trip Planner",
		Currency:  "JPY",
		MapCenter: domain.Coordinates{Lat: 36.2048, Lng: 138.2529},
		MapZoom:   6,
		Template: []DayTemplate{
			{City: "Tokyo", Title: "Arrival in Tokyo", Coords: domain.Coordinates{Lat: 35.6762, Lng: 139.6503}},
			{City: "Tokyo", Title: "Explore Tokyo", Coords: domain.Coordinates{Lat: 35.6762, Lng: 139.6503}},
			{City: "Kyoto", Title: "Travel to Kyoto", Coords: domain.Coordinates{Lat: 35.0116, Lng: 135.7681}},
			{City: "Kyoto", Title: "Temples and Culture", Coords: domain.Coordinates{Lat: 35.0116, Lng: 135.7681}},
			{City: "Osaka", Title: "Osaka Food Tour", Coords: domain.Coordinates{Lat: 34.6937, Lng: 135.5023}},
			{City: "Osaka", Title: "Universal Studios Japan", Coords: domain.Coordinates{Lat: 34.6654, Lng: 135.4324}},
			{City: "Tokyo", Title: "Return to Tokyo & Departure", Coords: domain.Coordinates{Lat: 35.6762, Lng: 139.6503}},
		},
	},
	"malaysia": {
		Mode:      "malaysia",
		Title:     "Malaysia Trip Planner",
		Currency:  "MYR",
		MapCenter: domain.Coordinates{Lat: 4.2105, Lng: 101.9758},
		MapZoom:   6,
		Template: []DayTemplate{
			{City: "Kuala Lumpur", Title: "Arrival in Kuala Lumpur", Coords: domain.Coordinates{Lat: 3.1390, Lng: 101.6869}},
			{City: "Kuala Lumpur", Title: "City Tour & Petronas Towers", Coords: domain.Coordinates{Lat: 3.1579, Lng: 101.7114}},
			{City: "Kota Kinabalu", Title: "Flight to Kota Kinabalu", Coords: domain.Coordinates{Lat: 5.9780, Lng: 116.0735}},
			{City: "Kota Kinabalu", Title: "Island Hopping", Coords: domain.Coordinates{Lat: 5.9780, Lng: 116.0735}},
			{City: "Mount Kinabalu", Title: "Mount Kinabalu National Park", Coords: domain.Coordinates{Lat: 6.0329, Lng: 116.1193}},
			{City: "Kuala Lumpur", Title: "Return to Kuala Lumpur", Coords: domain.Coordinates{Lat: 3.1390, Lng: 101.6869}},
			{City: "Kuala Lumpur", Title: "Shopping & Departure", Coords: domain.Coordinates{Lat: 3.1390, Lng: 101.6869}},
		},
	},
	"paris": {
		Mode:      "paris",
		Title:     "Paris Trip Planner",
		Currency:  "EUR",
		MapCenter: domain.Coordinates{Lat: 48.8566, Lng: 2.3522},
		MapZoom:   12,
		Template: []DayTemplate{
			{City: "Paris", Title: "Arrival and Eiffel Tower", Coords: domain.Coordinates{Lat: 48.8584, Lng: 2.2945}},
			{City: "Paris", Title: "Louvre and Seine Cruise", Coords: domain.Coordinates{Lat: 48.8606, Lng: 2.3376}},
			{City: "Paris", Title: "Montmartre & Sacré-Cœur", Coords: domain.Coordinates{Lat: 48.8867, Lng: 2.3431}},
			{City: "Paris", Title: "Versailles Day Trip", Coords: domain.Coordinates{Lat: 48.8049, Lng: 2.1204}},
			{City: "Paris", Title: "Shopping & Cafés", Coords: domain.Coordinates{Lat: 48.8566, Lng: 2.3522}},
		},
	},
	"newyork": {
		Mode:      "newyork",
		Title:     "New York Trip Planner",
		Currency:  "USD",
		MapCenter: domain.Coordinates{Lat: 40.7128, Lng: -74.0060},
		MapZoom:   11,
		Template: []DayTemplate{
			{City: "New York", Title: "Arrival and Times Square", Coords: domain.Coordinates{Lat: 40.7580, Lng: -73.9855}},
			{City: "New York", Title: "Central Park & Museums", Coords: domain.Coordinates{Lat: 40.7812, Lng: -73.9665}},
			{City: "New York", Title: "Statue of Liberty & Ellis Island", Coords: domain.Coordinates{Lat: 40.7061, Lng: -74.0170}},
			{City: "New York", Title: "Brooklyn Bridge & DUMBO", Coords: domain.Coordinates{Lat: 40.7061, Lng: -73.9969}},
			{City: "New York", Title: "Shopping and Departure", Coords: domain.Coordinates{Lat: 40.7580, Lng: -73.9855}},
		},
	},
	"blank": {
		Mode:      "blank",
		Title:     "Custom Trip Planner",
		Currency:  "USD",
		MapCenter: domain.Coordinates{Lat: 20, Lng: 0},
		MapZoom:   2,
		Template:  nil,
	},
}

// LookupMode returns the config for mode, falling back to "blank" for
// unknown or empty modes. The second result reports whether the requested
// mode matched a registered template.
func LookupMode(mode string) (CountryConfig, bool) {
	cfg, ok := registry[strings.ToLower(mode)]
	if !ok {
		return registry["blank"], false
	}
	return cfg, true
}

// TemplateDays materializes the config's template into an itinerary.
// Blank mode yields a single empty day so the planner never starts with
// nothing to edit. The optional date range is applied sequentially.
func (c CountryConfig) TemplateDays(startDate, endDate string) []domain.Day {
	if len(c.Template) == 0 {
		return []domain.Day{domain.NewDay(1, "", "", nil, "")}
	}
	days := make([]domain.Day, 0, len(c.Template))
	for i, t := range c.Template {
		coords := t.Coords
		days = append(days, domain.NewDay(i+1, t.City, t.Title, &coords, ""))
	}
	if startDate != "" && endDate != "" {
		domain.AssignDates(days, startDate, endDate)
	}
	return days
}
