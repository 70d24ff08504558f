package models

import "time"

// Achievement is a badge a user can earn through reading activity.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// FeedItem is a single entry in the community activity feed.
type FeedItem struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Type      string    `json:"type"` // "completed", "started", "review", "achievement"
	BookTitle string    `json:"book_title,omitempty"`
	Content   string    `json:"content,omitempty"`
	Rating    int       `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
