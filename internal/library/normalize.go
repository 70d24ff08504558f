// Normalization of heterogeneous book representations into the canonical
// models.Book shape. Input arrives either as a catalog lookup result or as a
// legacy persisted record (an export from the old WordPress plugin); each
// variant has its own entry point rather than sniffing fields at runtime.

package library

import (
	"strings"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
)

// PlaceholderCover is substituted when a source offers no usable cover image.
const PlaceholderCover = "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=300&h=450&fit=crop"

// libraryGenreLimit caps how many lookup categories become genre tags on a
// library entry. The full category list is only shown on raw lookup results.
const libraryGenreLimit = 2

// BookFromLookup converts an external catalog lookup result into a canonical
// Book ready for insertion. DateAdded and ID are left for the store to assign.
func BookFromLookup(meta *models.BookMetadata) *models.Book {
	return &models.Book{
		Title:      normalizeTitle(meta.Title),
		Author:     JoinAuthors(meta.Authors),
		CoverURL:   NormalizeCoverURL(meta.CoverURL),
		Genres:     truncateGenres(meta.Categories, libraryGenreLimit),
		Status:     models.StatusToRead,
		Notes:      meta.Description,
		ISBN:       meta.ISBN,
		PagesTotal: nonNegative(meta.PageCount),
	}
}

// LegacyRecord mirrors a row exported by the old WordPress plugin: snake_case
// names, a single genre string, and nullable columns as pointers.
type LegacyRecord struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	CoverURL      *string    `json:"cover_url"`
	Genre         *string    `json:"genre"`
	Series        *string    `json:"series"`
	SeriesNumber  *int       `json:"series_number"`
	Status        string     `json:"status"`
	Rating        *int       `json:"rating"`
	SpiceRating   *int       `json:"spice_rating"`
	Notes         *string    `json:"notes"`
	IsFavorite    bool       `json:"is_favorite"`
	IsWishlisted  bool       `json:"is_wishlisted"`
	PagesRead     *int       `json:"pages_read"`
	PagesTotal    *int       `json:"pages_total"`
	DateAdded     *time.Time `json:"date_added"`
	DateStarted   *time.Time `json:"date_started"`
	DateCompleted *time.Time `json:"date_completed"`
}

// BookFromLegacy converts a legacy persisted record into a canonical Book.
func BookFromLegacy(rec *LegacyRecord) *models.Book {
	book := &models.Book{
		ID:            rec.ID,
		Title:         normalizeTitle(rec.Title),
		Author:        rec.Author,
		CoverURL:      NormalizeCoverURL(strOrEmpty(rec.CoverURL)),
		Genres:        []string{},
		Status:        NormalizeStatus(rec.Status),
		Rating:        intOrZero(rec.Rating),
		SpiceRating:   intOrZero(rec.SpiceRating),
		Notes:         strOrEmpty(rec.Notes),
		IsFavorite:    rec.IsFavorite,
		IsWishlisted:  rec.IsWishlisted,
		PagesRead:     nonNegative(intOrZero(rec.PagesRead)),
		PagesTotal:    nonNegative(intOrZero(rec.PagesTotal)),
		DateStarted:   rec.DateStarted,
		DateCompleted: rec.DateCompleted,
	}
	if book.Author == "" {
		book.Author = "Unknown Author"
	}
	if rec.Genre != nil && *rec.Genre != "" {
		book.Genres = []string{*rec.Genre}
	}
	if rec.Series != nil && *rec.Series != "" {
		number := 1
		if rec.SeriesNumber != nil && *rec.SeriesNumber > 0 {
			number = *rec.SeriesNumber
		}
		book.Series = &models.Series{Name: *rec.Series, Number: number}
	}
	if rec.DateAdded != nil {
		book.DateAdded = *rec.DateAdded
	}
	if rec.Rating != nil && (*rec.Rating < 1 || *rec.Rating > 5) {
		book.Rating = 0
	}
	if rec.SpiceRating != nil && (*rec.SpiceRating < 0 || *rec.SpiceRating > 5) {
		book.SpiceRating = 0
	}
	if book.PagesTotal > 0 && book.PagesRead > book.PagesTotal {
		book.PagesRead = book.PagesTotal
	}
	return book
}

// NormalizeStatus maps the legacy "want-to-read" value onto to-read and
// passes every valid status through unchanged. Unknown values fall back to
// to-read rather than failing the whole record.
func NormalizeStatus(status string) models.ReadingStatus {
	if status == "want-to-read" {
		return models.StatusToRead
	}
	s := models.ReadingStatus(status)
	if !s.IsValid() {
		return models.StatusToRead
	}
	return s
}

// JoinAuthors collapses a list of contributor names into the single display
// author string.
func JoinAuthors(authors []string) string {
	var names []string
	for _, a := range authors {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return "Unknown Author"
	}
	return strings.Join(names, ", ")
}

// NormalizeCoverURL upgrades plain-http image links to https and substitutes
// the placeholder when no cover is available.
func NormalizeCoverURL(url string) string {
	if url == "" {
		return PlaceholderCover
	}
	if strings.HasPrefix(url, "http://") {
		return "https://" + strings.TrimPrefix(url, "http://")
	}
	return url
}

func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Unknown Title"
	}
	return title
}

func truncateGenres(categories []string, limit int) []string {
	genres := []string{}
	for _, c := range categories {
		if c == "" {
			continue
		}
		genres = append(genres, c)
		if len(genres) == limit {
			break
		}
	}
	return genres
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
