package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. arrival not before departure, reorder list that is
// not a permutation).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrOverlap is returned when a destination stay would overlap another stay
// of the same trip. Handlers should map this to HTTP 409 Conflict.
var ErrOverlap = errors.New("overlap")

// ErrOutOfBounds is returned when a destination stay does not fit inside the
// trip's date range. Handlers should map this to HTTP 422.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrConflict is returned by repo writes when the trip was modified by another
// request since it was read (optimistic concurrency on trips.version).
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("version conflict")

// ErrForbidden is returned when the caller lacks the capability required for
// an operation. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized is returned when no caller identity is attached to a request.
var ErrUnauthorized = errors.New("unauthorized")
