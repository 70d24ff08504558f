// This file defines the core data structures (models) for our application.
// These structs represent the books, reading goals, and users in a library.

package models

import "time"

// ReadingStatus is the position of a book in the user's reading lifecycle.
type ReadingStatus string

const (
	StatusToRead    ReadingStatus = "to-read"
	StatusReading   ReadingStatus = "reading"
	StatusPaused    ReadingStatus = "paused"
	StatusCompleted ReadingStatus = "completed"
	StatusDNF       ReadingStatus = "dnf"
)

// IsValid reports whether s is one of the known reading statuses.
func (s ReadingStatus) IsValid() bool {
	switch s {
	case StatusToRead, StatusReading, StatusPaused, StatusCompleted, StatusDNF:
		return true
	}
	return false
}

// Series identifies a book's position within a named series. Total is the
// user-entered size of the whole series; 0 means unknown.
type Series struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Total  int    `json:"total,omitempty"`
}

// Book represents a single book in a user's collection. Wishlisted books
// live in the same table and are distinguished only by the IsWishlisted flag.
type Book struct {
	ID            string        `json:"id"`
	UserID        int64         `json:"-"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	CoverURL      string        `json:"cover_url"`
	Genres        []string      `json:"genres"`
	Series        *Series       `json:"series,omitempty"`
	Status        ReadingStatus `json:"status"`
	Rating        int           `json:"rating,omitempty"`       // 1-5, 0 = unrated
	SpiceRating   int           `json:"spice_rating,omitempty"` // 0-5, 0 = unset
	Notes         string        `json:"notes,omitempty"`
	ISBN          string        `json:"isbn,omitempty"`
	IsFavorite    bool          `json:"is_favorite"`
	IsWishlisted  bool          `json:"is_wishlisted"`
	PagesRead     int           `json:"pages_read"`
	PagesTotal    int           `json:"pages_total"`
	DateAdded     time.Time     `json:"date_added"`
	DateStarted   *time.Time    `json:"date_started,omitempty"`
	DateCompleted *time.Time    `json:"date_completed,omitempty"`
	CreatedAt     time.Time     `json:"-"` // Hide from JSON responses
	UpdatedAt     time.Time     `json:"-"` // Hide from JSON responses
}
