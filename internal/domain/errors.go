package domain

import "errors"

// ErrNotFound is returned when a requested trip (or user) exists in neither
// the remote store nor the local cache. Handlers map this to HTTP 404; the
// planner surfaces it instead of silently substituting an empty itinerary.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing required field, end time before start time).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrIndexOutOfRange is returned by mutation operations given a day or
// activity index outside the working copy. This indicates a UI-state bug,
// not bad user input; it is fatal to the operation and logged.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrAuthRequired is returned when an operation needs an authenticated
// user and none is present, or when credentials fail to verify.
// Handlers should map this to HTTP 401.
var ErrAuthRequired = errors.New("authentication required")

// ErrEmptyItinerary is returned by an explicit save when the working copy
// has no days. Recoverable; surfaced as a message, never persisted.
var ErrEmptyItinerary = errors.New("itinerary is empty")

// ErrCancelled is returned when the user dismisses the naming prompt
// during an explicit save. The save aborts with no state change.
var ErrCancelled = errors.New("cancelled")

// ErrConflict is returned when a unique constraint is violated,
// e.g. signing up with an email that is already registered.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")
