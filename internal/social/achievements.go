// Package social evaluates reading achievements and serves the community
// activity feed.
package social

import (
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
)

type achievementRule struct {
	id          string
	name        string
	description string
	icon        string
	unlocked    func(books []*models.Book) bool
}

var rules = []achievementRule{
	{
		id:          "first-book",
		name:        "First Steps",
		description: "Finish your first book",
		icon:        "🌱",
		unlocked:    func(books []*models.Book) bool { return countCompleted(books) >= 1 },
	},
	{
		id:          "bookworm",
		name:        "Bookworm",
		description: "Finish 10 books",
		icon:        "🐛",
		unlocked:    func(books []*models.Book) bool { return countCompleted(books) >= 10 },
	},
	{
		id:          "bibliophile",
		name:        "Bibliophile",
		description: "Finish 25 books",
		icon:        "📚",
		unlocked:    func(books []*models.Book) bool { return countCompleted(books) >= 25 },
	},
	{
		id:          "explorer",
		name:        "Genre Explorer",
		description: "Finish books in 5 different genres",
		icon:        "🧭",
		unlocked:    func(books []*models.Book) bool { return countCompletedGenres(books) >= 5 },
	},
	{
		id:          "marathoner",
		name:        "Marathoner",
		description: "Read 5000 pages in total",
		icon:        "🏃",
		unlocked:    func(books []*models.Book) bool { return totalPagesRead(books) >= 5000 },
	},
	{
		id:          "critic",
		name:        "Critic",
		description: "Rate 5 books",
		icon:        "⭐",
		unlocked:    func(books []*models.Book) bool { return countRated(books) >= 5 },
	},
	{
		id:          "series-devotee",
		name:        "Series Devotee",
		description: "Own 3 books from the same series",
		icon:        "🔗",
		unlocked:    hasSeriesOfThree,
	},
}

// EvaluateAchievements returns the full badge set with unlock state derived
// from the user's library snapshot. Unlock timestamps use the latest
// completion date among the books that satisfied the rule, falling back to
// now for rules that do not depend on completions.
func EvaluateAchievements(books []*models.Book, now time.Time) []models.Achievement {
	achievements := make([]models.Achievement, 0, len(rules))
	for _, rule := range rules {
		a := models.Achievement{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Icon:        rule.icon,
		}
		if rule.unlocked(books) {
			a.IsUnlocked = true
			ts := latestCompletion(books)
			if ts == nil {
				ts = &now
			}
			a.UnlockedAt = ts
		}
		achievements = append(achievements, a)
	}
	return achievements
}

func countCompleted(books []*models.Book) int {
	var n int
	for _, b := range books {
		if b.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

func countCompletedGenres(books []*models.Book) int {
	genres := make(map[string]bool)
	for _, b := range books {
		if b.Status != models.StatusCompleted {
			continue
		}
		for _, g := range b.Genres {
			genres[g] = true
		}
	}
	return len(genres)
}

func totalPagesRead(books []*models.Book) int {
	var pages int
	for _, b := range books {
		pages += b.PagesRead
	}
	return pages
}

func countRated(books []*models.Book) int {
	var n int
	for _, b := range books {
		if b.Rating > 0 {
			n++
		}
	}
	return n
}

func hasSeriesOfThree(books []*models.Book) bool {
	counts := make(map[string]int)
	for _, b := range books {
		if b.Series == nil || b.Series.Name == "" {
			continue
		}
		counts[b.Series.Name]++
		if counts[b.Series.Name] >= 3 {
			return true
		}
	}
	return false
}

func latestCompletion(books []*models.Book) *time.Time {
	var latest *time.Time
	for _, b := range books {
		if b.Status != models.StatusCompleted || b.DateCompleted == nil {
			continue
		}
		if latest == nil || b.DateCompleted.After(*latest) {
			t := *b.DateCompleted
			latest = &t
		}
	}
	return latest
}
