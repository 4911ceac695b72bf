package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. Credential handling lives in the auth
// service; the planner only needs identity for save scoping and the
// per-user trip index.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// Key returns the identifier used to namespace this user's trip index in
// the local cache: email when present, otherwise the id.
func (u User) Key() string {
	if u.Email != "" {
		return u.Email
	}
	return u.ID.String()
}
