// Derived reading statistics. Every function here is pure: it consumes a
// snapshot of books and goals plus an explicit reference time and produces a
// read-only view model. Nothing in this package reads the system clock, so
// identical inputs always yield identical output.

package stats

import (
	"math"
	"sort"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
)

const trailingMonths = 12
const trailingWeeks = 12
const topGenreCount = 5

// MonthBucket is one bar of the monthly completion histogram.
type MonthBucket struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Label     string `json:"label"` // e.g. "Jan 2025"
	Completed int    `json:"completed"`
}

// MonthlyCompletions counts completed books for each of the trailing 12
// calendar months ending at now (current month included). Each month is the
// half-open interval [monthStart, nextMonthStart), so a book completed
// exactly on a month boundary counts toward the month that starts there.
func MonthlyCompletions(books []*models.Book, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 0, trailingMonths)
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := trailingMonths - 1; i >= 0; i-- {
		monthStart := current.AddDate(0, -i, 0)
		nextMonthStart := monthStart.AddDate(0, 1, 0)

		count := 0
		for _, book := range books {
			if book.Status != models.StatusCompleted || book.DateCompleted == nil {
				continue
			}
			if inHalfOpen(*book.DateCompleted, monthStart, nextMonthStart) {
				count++
			}
		}

		buckets = append(buckets, MonthBucket{
			Year:      monthStart.Year(),
			Month:     int(monthStart.Month()),
			Label:     monthStart.Format("Jan 2006"),
			Completed: count,
		})
	}
	return buckets
}

// GenreCount is one slice of the genre distribution.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GenreDistribution counts genre tag occurrences across the collection (a
// book with two genres contributes to both) and returns the top 5, sorted
// descending by count. Ties keep the order the genres were first encountered.
func GenreDistribution(books []*models.Book) []GenreCount {
	counts := make(map[string]int)
	var order []string
	for _, book := range books {
		for _, genre := range book.Genres {
			if _, seen := counts[genre]; !seen {
				order = append(order, genre)
			}
			counts[genre]++
		}
	}

	result := make([]GenreCount, 0, len(order))
	for _, name := range order {
		result = append(result, GenreCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if len(result) > topGenreCount {
		result = result[:topGenreCount]
	}
	return result
}

// WeekPace approximates daily page velocity for one trailing week.
type WeekPace struct {
	Week        int `json:"week"` // 1 = oldest of the trailing 12
	PagesPerDay int `json:"pages_per_day"`
}

// ReadingPace estimates pages per day for each of the trailing 12 weeks by
// summing the page counts of books completed within the week and dividing by
// 7. This is an approximation from completed-book totals, not page-turn
// telemetry; none is collected.
func ReadingPace(books []*models.Book, now time.Time) []WeekPace {
	weeks := make([]WeekPace, 0, trailingWeeks)
	for i := trailingWeeks - 1; i >= 0; i-- {
		weekStart := now.AddDate(0, 0, -(i+1)*7)
		weekEnd := now.AddDate(0, 0, -i*7)

		totalPages := 0
		for _, book := range books {
			if book.Status != models.StatusCompleted || book.DateCompleted == nil {
				continue
			}
			if inHalfOpen(*book.DateCompleted, weekStart, weekEnd) {
				totalPages += book.PagesTotal
			}
		}

		weeks = append(weeks, WeekPace{
			Week:        trailingWeeks - i,
			PagesPerDay: int(math.Round(float64(totalPages) / 7)),
		})
	}
	return weeks
}

// GoalProgress is a goal together with its completion state for its period.
type GoalProgress struct {
	Goal      *models.ReadingGoal `json:"goal"`
	Completed int                 `json:"completed"`
	Percent   int                 `json:"percent"`
	Remaining int                 `json:"remaining"`
}

// GoalProgressOf evaluates a goal against the snapshot. The goal's own
// (type, year, month) key defines the completion window.
func GoalProgressOf(goal *models.ReadingGoal, books []*models.Book) GoalProgress {
	var completed int
	if goal.GoalType == models.GoalMonthly {
		completed = CompletedInMonth(books, goal.Year, goal.Month)
	} else {
		completed = CompletedInYear(books, goal.Year)
	}

	percent := 0
	if goal.TargetBooks > 0 {
		percent = int(math.Round(100 * float64(completed) / float64(goal.TargetBooks)))
		if percent > 100 {
			percent = 100
		}
	}
	remaining := goal.TargetBooks - completed
	if remaining < 0 {
		remaining = 0
	}

	return GoalProgress{Goal: goal, Completed: completed, Percent: percent, Remaining: remaining}
}

// CompletedInYear counts books completed within the calendar year.
func CompletedInYear(books []*models.Book, year int) int {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return completedBetween(books, start, start.AddDate(1, 0, 0))
}

// CompletedInMonth counts books completed within the calendar month.
func CompletedInMonth(books []*models.Book, year, month int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return completedBetween(books, start, start.AddDate(0, 1, 0))
}

// SeriesProgress describes how much of a known series the user owns.
type SeriesProgress struct {
	Name  string `json:"name"`
	Owned int    `json:"owned"`
	// Total is the user-entered size of the series. When no owned copy
	// carries one, completeness is indeterminate: Known is false and Percent
	// stays 0 rather than assuming owned == total.
	Total    int  `json:"total,omitempty"`
	Known    bool `json:"known"`
	Percent  int  `json:"percent"`
	Complete bool `json:"complete"`
}

// SeriesCompleteness groups owned books by series name, ordered by first
// appearance in the snapshot.
func SeriesCompleteness(books []*models.Book) []SeriesProgress {
	index := make(map[string]int)
	var result []SeriesProgress

	for _, book := range books {
		if book.Series == nil || book.Series.Name == "" {
			continue
		}
		i, seen := index[book.Series.Name]
		if !seen {
			i = len(result)
			index[book.Series.Name] = i
			result = append(result, SeriesProgress{Name: book.Series.Name})
		}
		result[i].Owned++
		if book.Series.Total > result[i].Total {
			result[i].Total = book.Series.Total
		}
	}

	for i := range result {
		if result[i].Total > 0 {
			result[i].Known = true
			percent := int(math.Round(100 * float64(result[i].Owned) / float64(result[i].Total)))
			if percent > 100 {
				percent = 100
			}
			result[i].Percent = percent
			result[i].Complete = result[i].Owned >= result[i].Total
		}
	}
	return result
}

// Summary is the overview block shown on the statistics page.
type Summary struct {
	TotalBooks        int `json:"total_books"`
	CompletedThisYear int `json:"completed_this_year"`
	TotalPagesRead    int `json:"total_pages_read"`
	AvgPagesPerBook   int `json:"avg_pages_per_book"`
	CurrentlyReading  int `json:"currently_reading"`
	ReadingStreak     int `json:"reading_streak"`
}

// Summarize computes the headline numbers from the snapshot.
func Summarize(books []*models.Book, now time.Time) Summary {
	s := Summary{
		TotalBooks:        len(books),
		CompletedThisYear: CompletedInYear(books, now.Year()),
	}

	completedPages := 0
	completedCount := 0
	var lastCompleted *time.Time
	for _, book := range books {
		s.TotalPagesRead += book.PagesRead
		if book.Status == models.StatusReading {
			s.CurrentlyReading++
		}
		if book.Status == models.StatusCompleted {
			completedCount++
			completedPages += book.PagesTotal
			if book.DateCompleted != nil &&
				(lastCompleted == nil || book.DateCompleted.After(*lastCompleted)) {
				lastCompleted = book.DateCompleted
			}
		}
	}
	if completedCount > 0 {
		s.AvgPagesPerBook = int(math.Round(float64(completedPages) / float64(completedCount)))
	}

	// Streak decays from 30 by the days since the last finished book.
	if lastCompleted != nil {
		days := int(now.Sub(*lastCompleted).Hours() / 24)
		if days <= 30 {
			streak := 30 - days
			if streak < 1 {
				streak = 1
			}
			s.ReadingStreak = streak
		}
	}
	return s
}

func completedBetween(books []*models.Book, start, end time.Time) int {
	count := 0
	for _, book := range books {
		if book.Status != models.StatusCompleted || book.DateCompleted == nil {
			continue
		}
		if inHalfOpen(*book.DateCompleted, start, end) {
			count++
		}
	}
	return count
}

// inHalfOpen reports t in [start, end).
func inHalfOpen(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
