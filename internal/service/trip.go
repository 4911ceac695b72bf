// Package service contains the business logic for the trip store API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tripwise/internal/domain"
	"tripwise/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip. Any client-supplied id
// (temporary or otherwise) is discarded; the store assigns the canonical one.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip = normalizeTrip(trip)
	trip.ID = ""

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by its canonical id.
// Returns domain.ErrNotFound for unknown ids — including ids that are not
// UUIDs at all, such as client-side temporary ids.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", domain.ErrNotFound)
	}
	result, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns summary entries for all of one user's trips, most
// recently updated first. Always returns a non-nil slice so callers can
// safely range over it.
func (s *TripService) ListByUser(ctx context.Context, userID string) ([]domain.TripSummary, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	trips, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListByUser: %w", err)
	}

	summaries := make([]domain.TripSummary, 0, len(trips))
	for _, t := range trips {
		summaries = append(summaries, domain.TripSummary{
			ID:           t.ID,
			Title:        t.Name,
			Country:      t.Country,
			CountryLabel: t.CountryLabel,
			StartDate:    t.StartDate,
			EndDate:      t.EndDate,
			Days:         t.DaysCount,
			LastUpdated:  t.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return summaries, nil
}

// Update validates and overwrites an existing trip, preserving the path id.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if no
// trip with that id exists.
func (s *TripService) Update(ctx context.Context, id string, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip = normalizeTrip(trip)
	trip.ID = id

	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by its canonical id.
func (s *TripService) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, uid); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - UserID and Name must be non-empty.
//   - The itinerary must have at least one day.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: trip_name is required", domain.ErrValidation)
	}
	if len(trip.Days) == 0 {
		return fmt.Errorf("%w: itinerary must not be empty", domain.ErrValidation)
	}
	return nil
}

// normalizeTrip repairs derivable fields before persistence: day numbering,
// the day count, and missing activity ids.
func normalizeTrip(trip domain.Trip) domain.Trip {
	domain.Normalize(trip.Days)
	trip.DaysCount = len(trip.Days)
	trip.Name = strings.TrimSpace(trip.Name)
	return trip
}
