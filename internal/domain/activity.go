package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ActivityType tags an activity for icon selection and budget grouping.
type ActivityType string

// The five recognized activity types. Values match what the planner UI
// presents and what stored itineraries contain.
const (
	TypeActivity ActivityType = "Activity"
	TypeHotel    ActivityType = "Hotel"
	TypeFood     ActivityType = "Food"
	TypeCarRent  ActivityType = "Car rent"
	TypeFlight   ActivityType = "Flight"
)

// BudgetKind marks an activity as free or paid.
// Paid activities carry a price and currency and feed the budget view.
type BudgetKind string

const (
	BudgetFree BudgetKind = "Free"
	BudgetPaid BudgetKind = "Paid"
)

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Activity is a single scheduled event within a day.
// ID is assigned at creation and stable across edits — it keys UI
// expand/collapse state and must never be regenerated.
type Activity struct {
	ID           string       `json:"id"`
	Type         ActivityType `json:"type"`
	Name         string       `json:"name"`
	Location     string       `json:"location,omitempty"`
	LocationLink string       `json:"locationLink,omitempty"`
	Description  string       `json:"description,omitempty"`
	StartTime    string       `json:"startTime,omitempty"` // "HH:MM"
	EndTime      string       `json:"endTime,omitempty"`   // "HH:MM"
	Budget       BudgetKind   `json:"budget"`
	Price        *float64     `json:"price,omitempty"`    // set only when Budget == Paid
	Currency     string       `json:"currency,omitempty"` // set only when Budget == Paid
	Coords       *Coordinates `json:"coords,omitempty"`
}

// NewActivity returns an Activity with defaults applied: a fresh id,
// Type=Activity, Budget=Free, and the trip's default currency (USD when
// the trip has none). The factory never rejects input — required display
// fields are enforced by the mutation API, not here.
func NewActivity(defaultCurrency string) Activity {
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return Activity{
		ID:       NewActivityID(),
		Type:     TypeActivity,
		Budget:   BudgetFree,
		Currency: defaultCurrency,
	}
}

// NewActivityID generates a process-unique activity identifier.
func NewActivityID() string {
	return fmt.Sprintf("activity_%s", uuid.NewString())
}

// Paid reports whether the activity contributes to the budget view,
// i.e. it is marked paid and carries both a price and a currency.
func (a Activity) Paid() bool {
	return a.Budget == BudgetPaid && a.Price != nil && a.Currency != ""
}

// ValidType reports whether t is one of the recognized activity types.
func ValidType(t ActivityType) bool {
	switch t {
	case TypeActivity, TypeHotel, TypeFood, TypeCarRent, TypeFlight:
		return true
	}
	return false
}
