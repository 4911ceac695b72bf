package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tripwise/internal/domain"
)

// CreateTrip handles POST /api/trips.
// Responds 201 with the stored trip, including its server-assigned id.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips/{userID}.
// Responds 200 with the user's trip summaries, newest first. An unknown
// user is not an error — it simply has no trips yet.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.trips.ListByUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetTrip handles GET /api/trip/{id}.
// Responds 200 with the full trip, itinerary body included.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.trips.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trip/{id}.
// The path id wins over any id in the body, so resaving an already-saved
// trip can never create a duplicate.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	var trip domain.Trip
	if err := json.NewDecoder(r.Body).Decode(&trip); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	updated, err := s.trips.Update(r.Context(), chi.URLParam(r, "id"), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trip/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
