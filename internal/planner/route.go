package planner

import "strings"

// RouteParams is the navigation context a planner session starts from —
// the query parameters of the planner page. It decides which load path
// the persistence coordinator takes; exactly one applies per session.
type RouteParams struct {
	// TripID selects an existing saved trip. Takes priority over Mode.
	TripID string
	// Mode selects a template namespace ("japan", "blank", ...).
	Mode string
	// Country / CountryLabel describe a custom destination in blank mode.
	Country      string
	CountryLabel string
	// StartDate / EndDate ("2006-01-02") assign dates across template days.
	StartDate string
	EndDate   string
}

// Normalize lowercases the mode in place and returns the params.
func (p RouteParams) Normalize() RouteParams {
	p.Mode = strings.ToLower(strings.TrimSpace(p.Mode))
	p.TripID = strings.TrimSpace(p.TripID)
	return p
}

// HasTrip reports whether the route names a saved trip to load.
func (p RouteParams) HasTrip() bool { return p.TripID != "" }

// HasTemplate reports whether the route requests a template mode.
func (p RouteParams) HasTemplate() bool { return p.Mode != "" }

// Label returns the display name for the destination: the explicit label,
// then the country, then a generic fallback.
func (p RouteParams) Label() string {
	if p.CountryLabel != "" {
		return p.CountryLabel
	}
	if p.Country != "" {
		return p.Country
	}
	return "Custom Trip"
}
