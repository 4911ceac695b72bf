// Package planner holds the in-memory working copy of an itinerary and
// the mutation API that is its only sanctioned writer. Every successful
// mutation follows the same sequence: validate, mutate, recompute the
// derived views, stage the working copy for persistence. Failed
// validation leaves state, views, and cache untouched.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tripwise/internal/domain"
	"tripwise/internal/geo"
	"tripwise/internal/views"
)

// MutateHook is called after every successful itinerary mutation.
// The persistence coordinator registers its auto-save here.
type MutateHook func(ctx context.Context, s *Session)

// Config assembles a Session. Zero-value fields get safe defaults:
// nil Geocoder disables geocoding, nil Logger uses slog.Default.
type Config struct {
	TripID       string
	TripName     string
	Mode         string
	Country      string
	CountryLabel string
	StartDate    string
	EndDate      string
	Currency     string
	Days         []domain.Day
	MapMode      views.GroupMode
	MapCenter    domain.Coordinates
	MapZoom      int
	Geocoder     geo.Geocoder
	OnMutate     MutateHook
	Logger       *slog.Logger
}

// Session owns one planner's working copy and UI-state pointers.
// It replaces the original page's globals with an explicit object: the
// page controller creates one per planning session and passes it to
// whoever needs to read views or apply mutations.
type Session struct {
	tripID       string
	tripName     string
	mode         string
	country      string
	countryLabel string
	startDate    string
	endDate      string
	currency     string

	days []domain.Day

	// currentDay is the highlighted day card; expandedDay / expandedActivity
	// are the open detail panes. Activities are keyed by stable id so
	// expansion survives edits; days are positional.
	currentDay       int
	expandedDay      int
	expandedActivity string

	mapMode   views.GroupMode
	mapCenter domain.Coordinates
	mapZoom   int
	mapView   views.MapView
	budget    views.Budget

	geocoder geo.Geocoder
	onMutate MutateHook
	log      *slog.Logger
}

// NewSession builds a Session from cfg, normalizing the initial itinerary
// and computing the initial views.
func NewSession(cfg Config) *Session {
	s := &Session{
		tripID:       cfg.TripID,
		tripName:     cfg.TripName,
		mode:         cfg.Mode,
		country:      cfg.Country,
		countryLabel: cfg.CountryLabel,
		startDate:    cfg.StartDate,
		endDate:      cfg.EndDate,
		currency:     cfg.Currency,
		days:         cfg.Days,
		expandedDay:  -1,
		mapMode:      cfg.MapMode,
		mapCenter:    cfg.MapCenter,
		mapZoom:      cfg.MapZoom,
		geocoder:     cfg.Geocoder,
		onMutate:     cfg.OnMutate,
		log:          cfg.Logger,
	}
	if s.currency == "" {
		s.currency = "USD"
	}
	if s.days == nil {
		s.days = []domain.Day{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	domain.Normalize(s.days)
	s.refresh()
	return s
}

// ---- accessors -------------------------------------------------------------

// Days returns the working copy. Callers must treat it as read-only;
// all writes go through the mutation methods.
func (s *Session) Days() []domain.Day { return s.days }

// MapView returns the current derived map view.
func (s *Session) MapView() views.MapView { return s.mapView }

// Budget returns the current derived budget breakdown.
func (s *Session) Budget() views.Budget { return s.budget }

func (s *Session) TripID() string       { return s.tripID }
func (s *Session) TripName() string     { return s.tripName }
func (s *Session) Mode() string         { return s.mode }
func (s *Session) Country() string      { return s.country }
func (s *Session) CountryLabel() string { return s.countryLabel }
func (s *Session) Currency() string     { return s.currency }
func (s *Session) CurrentDay() int      { return s.currentDay }
func (s *Session) ExpandedDay() int     { return s.expandedDay }

// ExpandedActivity returns the id of the open activity pane, or "".
func (s *Session) ExpandedActivity() string { return s.expandedActivity }

// SetTripID records the working trip id. The persistence coordinator
// calls this when the remote store assigns the canonical id.
func (s *Session) SetTripID(id string) { s.tripID = id }

// SetTripName records the trip's display name.
func (s *Session) SetTripName(name string) { s.tripName = name }

// StartDate returns the trip start date, inferring it from the first
// day's date when the route did not carry one.
func (s *Session) StartDate() string {
	if s.startDate != "" {
		return s.startDate
	}
	if len(s.days) > 0 {
		return s.days[0].Date
	}
	return ""
}

// EndDate returns the trip end date, inferring it from the last day's
// date when the route did not carry one.
func (s *Session) EndDate() string {
	if s.endDate != "" {
		return s.endDate
	}
	if len(s.days) > 0 {
		return s.days[len(s.days)-1].Date
	}
	return ""
}

// ---- day mutations ---------------------------------------------------------

// DayInput carries the editable fields of a day. Coords, when set,
// bypass geocoding; otherwise a non-empty City is geocoded best-effort.
type DayInput struct {
	Title  string
	City   string
	Date   string
	Coords *domain.Coordinates
}

// AddDay validates and appends a new day. The day number is the new
// itinerary length; geocode failure inserts the day without coordinates.
func (s *Session) AddDay(ctx context.Context, in DayInput) (domain.Day, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Day{}, fmt.Errorf("%w: day title is required", domain.ErrValidation)
	}

	coords := s.resolveCoords(ctx, in.Coords, strings.TrimSpace(in.City))
	day := domain.NewDay(len(s.days)+1, strings.TrimSpace(in.City), title, coords, in.Date)
	s.days = append(s.days, day)
	s.currentDay = len(s.days) - 1

	s.mutated(ctx)
	return day, nil
}

// AddEmptyDay appends a day with the default "Day {n}" title, the quick
// add-day action that skips the edit form.
func (s *Session) AddEmptyDay(ctx context.Context) domain.Day {
	day := domain.NewDay(len(s.days)+1, "", "", nil, "")
	s.days = append(s.days, day)
	s.currentDay = len(s.days) - 1

	s.mutated(ctx)
	return day
}

// EditDay validates and overwrites the editable fields of the day at
// index. Activities and their ids are untouched.
func (s *Session) EditDay(ctx context.Context, index int, in DayInput) error {
	if index < 0 || index >= len(s.days) {
		s.log.Error("edit day: bad index", "index", index, "days", len(s.days))
		return fmt.Errorf("planner.Session.EditDay: %w", domain.ErrIndexOutOfRange)
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: day title is required", domain.ErrValidation)
	}

	city := strings.TrimSpace(in.City)
	day := &s.days[index]
	day.Title = title
	day.City = city
	if in.Date != "" {
		day.Date = in.Date
	}
	day.Coords = s.resolveCoords(ctx, in.Coords, city)

	s.mutated(ctx)
	return nil
}

// DeleteDay removes the day at index and renumbers the remainder.
// The expanded-day pointer is cleared when it pointed at the removed day
// and decremented when it pointed past it.
func (s *Session) DeleteDay(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.days) {
		s.log.Error("delete day: bad index", "index", index, "days", len(s.days))
		return fmt.Errorf("planner.Session.DeleteDay: %w", domain.ErrIndexOutOfRange)
	}

	s.days = append(s.days[:index], s.days[index+1:]...)
	domain.Renumber(s.days)

	switch {
	case s.expandedDay == index:
		s.expandedDay = -1
	case s.expandedDay > index:
		s.expandedDay--
	}
	if s.currentDay >= len(s.days) {
		s.currentDay = max(0, len(s.days)-1)
	}

	s.mutated(ctx)
	return nil
}

// ---- activity mutations ----------------------------------------------------

// ActivityInput carries the editable fields of an activity.
type ActivityInput struct {
	Type         domain.ActivityType
	Name         string
	Location     string
	LocationLink string
	Description  string
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	Budget       domain.BudgetKind
	Price        *float64
	Currency     string
	Coords       *domain.Coordinates
}

// AddActivity validates and appends an activity to the day at dayIndex.
// A fresh id is assigned; the activity's location is geocoded best-effort.
func (s *Session) AddActivity(ctx context.Context, dayIndex int, in ActivityInput) (domain.Activity, error) {
	if dayIndex < 0 || dayIndex >= len(s.days) {
		s.log.Error("add activity: bad day index", "index", dayIndex, "days", len(s.days))
		return domain.Activity{}, fmt.Errorf("planner.Session.AddActivity: %w", domain.ErrIndexOutOfRange)
	}
	if err := s.validateActivity(in); err != nil {
		return domain.Activity{}, err
	}

	a := domain.NewActivity(s.currency)
	s.applyActivity(ctx, &a, in)
	s.days[dayIndex].Activities = append(s.days[dayIndex].Activities, a)

	s.mutated(ctx)
	return a, nil
}

// EditActivity validates and overwrites the activity at the given
// position. The activity id is preserved — it keys UI expansion state
// and must survive every edit.
func (s *Session) EditActivity(ctx context.Context, dayIndex, actIndex int, in ActivityInput) error {
	if dayIndex < 0 || dayIndex >= len(s.days) {
		return fmt.Errorf("planner.Session.EditActivity: %w", domain.ErrIndexOutOfRange)
	}
	acts := s.days[dayIndex].Activities
	if actIndex < 0 || actIndex >= len(acts) {
		return fmt.Errorf("planner.Session.EditActivity: %w", domain.ErrIndexOutOfRange)
	}
	if err := s.validateActivity(in); err != nil {
		return err
	}

	a := &acts[actIndex]
	s.applyActivity(ctx, a, in)

	s.mutated(ctx)
	return nil
}

// DeleteActivity removes the activity at the given position. Asking the
// user to confirm is the boundary layer's job, not enforced here.
func (s *Session) DeleteActivity(ctx context.Context, dayIndex, actIndex int) error {
	if dayIndex < 0 || dayIndex >= len(s.days) {
		return fmt.Errorf("planner.Session.DeleteActivity: %w", domain.ErrIndexOutOfRange)
	}
	acts := s.days[dayIndex].Activities
	if actIndex < 0 || actIndex >= len(acts) {
		return fmt.Errorf("planner.Session.DeleteActivity: %w", domain.ErrIndexOutOfRange)
	}

	if s.expandedActivity == acts[actIndex].ID {
		s.expandedActivity = ""
	}
	s.days[dayIndex].Activities = append(acts[:actIndex], acts[actIndex+1:]...)

	s.mutated(ctx)
	return nil
}

// ---- UI-state pointers -----------------------------------------------------

// SetCurrentDay highlights the day at index; out-of-range is a no-op.
func (s *Session) SetCurrentDay(index int) {
	if index < 0 || index >= len(s.days) {
		return
	}
	s.currentDay = index
}

// ToggleDay opens the day pane at index, or closes it when already open.
func (s *Session) ToggleDay(index int) {
	if s.expandedDay == index {
		s.expandedDay = -1
		return
	}
	if index >= 0 && index < len(s.days) {
		s.expandedDay = index
	}
}

// ToggleActivity opens the detail pane of the activity with the given id,
// or closes it when already open.
func (s *Session) ToggleActivity(id string) {
	if s.expandedActivity == id {
		s.expandedActivity = ""
		return
	}
	s.expandedActivity = id
}

// ---- internals -------------------------------------------------------------

// validateActivity enforces the activity business rules:
//   - type, name, start time, and end time are required
//   - type and budget must be recognized values
//   - times are "HH:MM" and the end must not precede the start
//   - a paid activity needs a currency and a price >= 0
func (s *Session) validateActivity(in ActivityInput) error {
	if in.Type == "" {
		return fmt.Errorf("%w: activity type is required", domain.ErrValidation)
	}
	if !domain.ValidType(in.Type) {
		return fmt.Errorf("%w: unknown activity type %q", domain.ErrValidation, in.Type)
	}
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: activity name is required", domain.ErrValidation)
	}

	start, err := parseClock(in.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start time is required as HH:MM", domain.ErrValidation)
	}
	end, err := parseClock(in.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end time is required as HH:MM", domain.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end time must not be before start time", domain.ErrValidation)
	}

	switch in.Budget {
	case "", domain.BudgetFree:
	case domain.BudgetPaid:
		if in.Currency == "" {
			return fmt.Errorf("%w: currency is required for paid activities", domain.ErrValidation)
		}
		if in.Price == nil {
			return fmt.Errorf("%w: price is required for paid activities", domain.ErrValidation)
		}
		if *in.Price < 0 {
			return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown budget kind %q", domain.ErrValidation, in.Budget)
	}

	return nil
}

// applyActivity copies validated input onto a, leaving a.ID alone.
// Free activities carry no price or currency.
func (s *Session) applyActivity(ctx context.Context, a *domain.Activity, in ActivityInput) {
	a.Type = in.Type
	a.Name = strings.TrimSpace(in.Name)
	a.Location = strings.TrimSpace(in.Location)
	a.LocationLink = strings.TrimSpace(in.LocationLink)
	a.Description = strings.TrimSpace(in.Description)
	a.StartTime = in.StartTime
	a.EndTime = in.EndTime

	if in.Budget == domain.BudgetPaid {
		a.Budget = domain.BudgetPaid
		price := *in.Price
		a.Price = &price
		a.Currency = in.Currency
	} else {
		a.Budget = domain.BudgetFree
		a.Price = nil
		a.Currency = ""
	}

	a.Coords = s.resolveCoords(ctx, in.Coords, a.Location)
}

// resolveCoords prefers explicit coordinates, then geocodes place when one
// is given. Geocoding failure degrades to no coordinates.
func (s *Session) resolveCoords(ctx context.Context, explicit *domain.Coordinates, place string) *domain.Coordinates {
	if explicit != nil {
		c := *explicit
		return &c
	}
	if place == "" || s.geocoder == nil {
		return nil
	}
	coords, err := s.geocoder.Geocode(ctx, place)
	if err != nil {
		s.log.Warn("geocode failed", "place", place, "error", err)
		return nil
	}
	return coords
}

// mutated runs the post-mutation sequence: recompute views, stage for save.
func (s *Session) mutated(ctx context.Context) {
	s.refresh()
	if s.onMutate != nil {
		s.onMutate(ctx, s)
	}
}

// refresh recomputes both derived views from scratch.
func (s *Session) refresh() {
	s.mapView = views.BuildMapView(s.days, views.MapOptions{
		Mode:   s.mapMode,
		Center: s.mapCenter,
		Zoom:   s.mapZoom,
	})
	s.budget = views.BuildBudget(s.days)
}

// parseClock parses an "HH:MM" time-of-day string.
func parseClock(v string) (time.Time, error) {
	return time.Parse("15:04", v)
}
