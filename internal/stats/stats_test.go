package stats

import (
	"testing"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completedBook(title string, completedAt time.Time, pages int, genres ...string) *models.Book {
	return &models.Book{
		Title:         title,
		Status:        models.StatusCompleted,
		DateCompleted: &completedAt,
		PagesTotal:    pages,
		Genres:        genres,
	}
}

func TestMonthlyCompletionsBoundary(t *testing.T) {
	// One book completed on the last day of January, one on the first day of
	// February. With a half-open month interval each lands in its own bucket.
	books := []*models.Book{
		completedBook("jan", date(2025, time.January, 31), 100),
		completedBook("feb", date(2025, time.February, 1), 100),
	}
	now := date(2025, time.February, 15)

	buckets := MonthlyCompletions(books, now)
	require.Len(t, buckets, 12)

	byLabel := make(map[string]int)
	for _, b := range buckets {
		byLabel[b.Label] = b.Completed
	}
	assert.Equal(t, 1, byLabel["Jan 2025"])
	assert.Equal(t, 1, byLabel["Feb 2025"])

	// The trailing window ends at the current month.
	last := buckets[len(buckets)-1]
	assert.Equal(t, 2025, last.Year)
	assert.Equal(t, 2, last.Month)
	first := buckets[0]
	assert.Equal(t, 2024, first.Year)
	assert.Equal(t, 3, first.Month)
}

func TestMonthlyCompletionsIgnoresUnfinishedBooks(t *testing.T) {
	// A lingering completion date on a book moved back to reading does not
	// count toward the histogram; only completed books do.
	finished := date(2025, time.May, 10)
	books := []*models.Book{
		completedBook("done", finished, 200),
		{Title: "reopened", Status: models.StatusReading, DateCompleted: &finished},
	}
	now := date(2025, time.May, 20)

	buckets := MonthlyCompletions(books, now)
	require.Len(t, buckets, 12)
	assert.Equal(t, 1, buckets[len(buckets)-1].Completed)
}

func TestMonthlyCompletionsDeterministic(t *testing.T) {
	books := []*models.Book{completedBook("a", date(2025, time.March, 10), 300)}
	now := date(2025, time.June, 1)
	assert.Equal(t, MonthlyCompletions(books, now), MonthlyCompletions(books, now))
}

func TestGenreDistribution(t *testing.T) {
	books := []*models.Book{
		{Genres: []string{"Fantasy", "Romance"}},
		{Genres: []string{"Fantasy"}},
	}
	dist := GenreDistribution(books)
	require.Len(t, dist, 2)
	assert.Equal(t, GenreCount{Name: "Fantasy", Count: 2}, dist[0])
	assert.Equal(t, GenreCount{Name: "Romance", Count: 1}, dist[1])
}

func TestGenreDistributionTopFiveAndStableTies(t *testing.T) {
	books := []*models.Book{
		{Genres: []string{"A", "B", "C", "D", "E", "F"}},
		{Genres: []string{"F"}},
	}
	dist := GenreDistribution(books)
	require.Len(t, dist, 5)
	assert.Equal(t, "F", dist[0].Name)
	// The remaining four all tie at count 1 and keep encounter order.
	assert.Equal(t, []GenreCount{
		{Name: "F", Count: 2},
		{Name: "A", Count: 1},
		{Name: "B", Count: 1},
		{Name: "C", Count: 1},
		{Name: "D", Count: 1},
	}, dist)
}

func TestReadingPace(t *testing.T) {
	now := date(2025, time.June, 30)
	books := []*models.Book{
		// Completed 3 days before now: lands in the most recent week.
		completedBook("recent", now.AddDate(0, 0, -3), 700),
		// Completed 10 days before now: the week before.
		completedBook("older", now.AddDate(0, 0, -10), 140),
		// Outside the 12-week window entirely.
		completedBook("ancient", now.AddDate(0, 0, -120), 999),
	}

	weeks := ReadingPace(books, now)
	require.Len(t, weeks, 12)
	assert.Equal(t, 100, weeks[11].PagesPerDay) // 700/7
	assert.Equal(t, 20, weeks[10].PagesPerDay)  // 140/7
	assert.Equal(t, 0, weeks[0].PagesPerDay)
}

func TestGoalProgressOf(t *testing.T) {
	goal := &models.ReadingGoal{GoalType: models.GoalYearly, TargetBooks: 4, Year: 2025}
	books := []*models.Book{
		completedBook("a", date(2025, time.February, 1), 100),
		completedBook("b", date(2025, time.July, 1), 100),
		completedBook("c", date(2024, time.December, 31), 100), // prior year
	}

	p := GoalProgressOf(goal, books)
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 50, p.Percent)
	assert.Equal(t, 2, p.Remaining)
}

func TestGoalProgressCapsAtHundred(t *testing.T) {
	goal := &models.ReadingGoal{GoalType: models.GoalMonthly, TargetBooks: 1, Year: 2025, Month: 2}
	books := []*models.Book{
		completedBook("a", date(2025, time.February, 2), 100),
		completedBook("b", date(2025, time.February, 20), 100),
	}

	p := GoalProgressOf(goal, books)
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 100, p.Percent)
	assert.Equal(t, 0, p.Remaining)
}

func TestSeriesCompleteness(t *testing.T) {
	books := []*models.Book{
		{Title: "ACOTAR", Series: &models.Series{Name: "A Court of Thorns and Roses", Number: 1, Total: 5}},
		{Title: "ACOMAF", Series: &models.Series{Name: "A Court of Thorns and Roses", Number: 2}},
		{Title: "Fourth Wing", Series: &models.Series{Name: "The Empyrean", Number: 1}},
		{Title: "standalone"},
	}

	progress := SeriesCompleteness(books)
	require.Len(t, progress, 2)

	acotar := progress[0]
	assert.Equal(t, "A Court of Thorns and Roses", acotar.Name)
	assert.Equal(t, 2, acotar.Owned)
	assert.True(t, acotar.Known)
	assert.Equal(t, 40, acotar.Percent)
	assert.False(t, acotar.Complete)

	// No owned copy carries a total: completeness is indeterminate, not 100%.
	empyrean := progress[1]
	assert.Equal(t, 1, empyrean.Owned)
	assert.False(t, empyrean.Known)
	assert.Equal(t, 0, empyrean.Percent)
	assert.False(t, empyrean.Complete)
}

func TestSummarize(t *testing.T) {
	now := date(2025, time.August, 1)
	recent := date(2025, time.July, 22) // 10 days before now
	books := []*models.Book{
		{Title: "reading", Status: models.StatusReading, PagesRead: 120},
		completedBook("done", recent, 300),
	}
	books[1].PagesRead = 300

	s := Summarize(books, now)
	assert.Equal(t, 2, s.TotalBooks)
	assert.Equal(t, 1, s.CompletedThisYear)
	assert.Equal(t, 420, s.TotalPagesRead)
	assert.Equal(t, 300, s.AvgPagesPerBook)
	assert.Equal(t, 1, s.CurrentlyReading)
	assert.Equal(t, 20, s.ReadingStreak)
}

func TestRecommendPrefersFavoriteGenres(t *testing.T) {
	books := []*models.Book{
		completedBook("done1", date(2025, time.January, 1), 100, "Fantasy"),
		completedBook("done2", date(2025, time.January, 2), 100, "Fantasy"),
		{Title: "thriller pick", Status: models.StatusToRead, Genres: []string{"Thriller"}},
		{Title: "fantasy pick", Status: models.StatusToRead, Genres: []string{"Fantasy"}},
	}

	picks := Recommend(books, 2)
	require.Len(t, picks, 2)
	assert.Equal(t, "fantasy pick", picks[0].Title)
	assert.Equal(t, "thriller pick", picks[1].Title)
}
