// Package handler implements the HTTP handlers for the trip store API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, auth.go) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripwise/internal/domain"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TripSummary, error)
	Update(ctx context.Context, id string, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id string) error
}

// AuthServicer defines the account operations the auth handlers depend on.
type AuthServicer interface {
	Signup(ctx context.Context, name, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
}

// Server holds the dependencies shared by all endpoint handlers.
type Server struct {
	trips TripServicer
	auth  AuthServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, auth AuthServicer) *Server {
	return &Server{trips: trips, auth: auth}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.Signup)
		r.Post("/login", s.Login)

		r.Post("/trips", s.CreateTrip)
		r.Get("/trips/{userID}", s.ListTrips)

		r.Get("/trip/{id}", s.GetTrip)
		r.Put("/trip/{id}", s.UpdateTrip)
		r.Delete("/trip/{id}", s.DeleteTrip)
	})

	return r
}
