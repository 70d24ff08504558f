package stats

import "github.com/bookhive/bookhive-go/internal/models"

// Recommend picks up to limit to-read books, preferring ones tagged with the
// genres the user finishes most. This is a static filter over the snapshot,
// not a recommendation engine: no scoring model, no external signals.
func Recommend(books []*models.Book, limit int) []*models.Book {
	var completed []*models.Book
	for _, book := range books {
		if book.Status == models.StatusCompleted {
			completed = append(completed, book)
		}
	}
	favorite := make(map[string]bool)
	for _, gc := range GenreDistribution(completed) {
		favorite[gc.Name] = true
	}

	var matched, rest []*models.Book
	for _, book := range books {
		if book.Status != models.StatusToRead {
			continue
		}
		hit := false
		for _, genre := range book.Genres {
			if favorite[genre] {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, book)
		} else {
			rest = append(rest, book)
		}
	}

	picks := append(matched, rest...)
	if len(picks) > limit {
		picks = picks[:limit]
	}
	return picks
}
