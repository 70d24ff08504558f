package social

import (
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
)

// MockFeed returns a static community feed. There is no real-time delivery
// or follower graph; the entries exist so the feed surface renders with
// plausible content.
func MockFeed(now time.Time) []models.FeedItem {
	return []models.FeedItem{
		{
			ID:        "feed-1",
			UserName:  "Emma",
			Type:      "completed",
			BookTitle: "The Invisible Life of Addie LaRue",
			Rating:    5,
			Timestamp: now.Add(-2 * time.Hour),
		},
		{
			ID:        "feed-2",
			UserName:  "Liam",
			Type:      "started",
			BookTitle: "Project Hail Mary",
			Timestamp: now.Add(-5 * time.Hour),
		},
		{
			ID:        "feed-3",
			UserName:  "Olivia",
			Type:      "review",
			BookTitle: "Tomorrow, and Tomorrow, and Tomorrow",
			Content:   "A beautiful story about friendship and the games we build together.",
			Rating:    4,
			Timestamp: now.Add(-26 * time.Hour),
		},
		{
			ID:        "feed-4",
			UserName:  "Noah",
			Type:      "achievement",
			Content:   "unlocked the Bookworm badge",
			Timestamp: now.Add(-48 * time.Hour),
		},
	}
}
