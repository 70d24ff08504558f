// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"errors"
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Validation errors. These are rejected synchronously and never partially
// applied; callers surface them as 400-level responses.
var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidSpice      = errors.New("spice rating must be between 0 and 5")
	ErrInvalidStatus     = errors.New("unknown reading status")
	ErrInvalidGoalTarget = errors.New("goal target must be at least 1 book")
	ErrInvalidGoalType   = errors.New("goal type must be 'monthly' or 'yearly'")
	ErrInvalidGoalMonth  = errors.New("month must be between 1 and 12 for monthly goals")
)

// ErrBookIDConflict reports an insert whose id already belongs to a different
// user. Callers surface it as a 409 rather than pretending the row was
// created.
var ErrBookIDConflict = errors.New("book id already in use")
