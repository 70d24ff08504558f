package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/google/uuid"
)

const bookColumns = `id, user_id, title, author, cover_url, genres, series_name,
	series_number, series_total, status, rating, spice_rating, notes, isbn,
	is_favorite, is_wishlisted, pages_read, pages_total, date_added,
	date_started, date_completed, created_at, updated_at`

// AddBook inserts a new book for the user. The insert is idempotent on the
// book's ID within the user's own shelf: re-adding an ID the user already owns
// is a no-op, never an overwrite, while an ID held by another user returns
// ErrBookIDConflict. An empty ID is assigned a fresh one, DateAdded defaults
// to now, ratings are validated under the same bounds as their dedicated
// operations, progress is clamped into [0, pages_total], and date_completed is
// derived from the status like UpdateStatus derives it.
func (s *Store) AddBook(userID int64, book *models.Book, now time.Time) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	if book.DateAdded.IsZero() {
		book.DateAdded = now
	}
	if book.Status == "" {
		book.Status = models.StatusToRead
	}
	if !book.Status.IsValid() {
		return ErrInvalidStatus
	}
	if book.Rating != 0 && (book.Rating < 1 || book.Rating > 5) {
		return ErrInvalidRating
	}
	if book.SpiceRating < 0 || book.SpiceRating > 5 {
		return ErrInvalidSpice
	}
	book.UserID = userID

	if book.PagesTotal < 0 {
		book.PagesTotal = 0
	}
	if book.PagesRead < 0 {
		book.PagesRead = 0
	}
	if book.PagesTotal > 0 && book.PagesRead > book.PagesTotal {
		book.PagesRead = book.PagesTotal
	}

	// date_completed only carries meaning on completed books.
	if book.Status == models.StatusCompleted {
		if book.DateCompleted == nil {
			book.DateCompleted = &now
		}
	} else {
		book.DateCompleted = nil
	}

	var owner int64
	if err := s.db.QueryRow(
		"SELECT user_id FROM books WHERE id = ?", book.ID).Scan(&owner); err == nil {
		if owner == userID {
			return nil
		}
		return ErrBookIDConflict
	} else if err != sql.ErrNoRows {
		return err
	}

	genres, err := encodeGenres(book.Genres)
	if err != nil {
		return err
	}
	var seriesName sql.NullString
	var seriesNumber, seriesTotal sql.NullInt64
	if book.Series != nil {
		seriesName = sql.NullString{String: book.Series.Name, Valid: true}
		seriesNumber = sql.NullInt64{Int64: int64(book.Series.Number), Valid: true}
		if book.Series.Total > 0 {
			seriesTotal = sql.NullInt64{Int64: int64(book.Series.Total), Valid: true}
		}
	}

	query := `
		INSERT INTO books (id, user_id, title, author, cover_url, genres,
			series_name, series_number, series_total, status, rating, spice_rating,
			notes, isbn, is_favorite, is_wishlisted, pages_read, pages_total,
			date_added, date_started, date_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		book.ID, userID, book.Title, book.Author, book.CoverURL, genres,
		seriesName, seriesNumber, seriesTotal, book.Status,
		nullableInt(book.Rating), nullableInt(book.SpiceRating),
		book.Notes, book.ISBN, book.IsFavorite, book.IsWishlisted,
		book.PagesRead, book.PagesTotal, book.DateAdded,
		book.DateStarted, book.DateCompleted, now, now)
	return err
}

// RemoveBook deletes the user's book with that id. Missing ids are a no-op.
func (s *Store) RemoveBook(userID int64, bookID string) error {
	_, err := s.db.Exec("DELETE FROM books WHERE id = ? AND user_id = ?", bookID, userID)
	return err
}

// GetBook retrieves a single book by id, scoped to the user.
func (s *Store) GetBook(userID int64, bookID string) (*models.Book, error) {
	row := s.db.QueryRow(
		"SELECT "+bookColumns+" FROM books WHERE id = ? AND user_id = ?", bookID, userID)
	return scanBook(row)
}

// ListBooks returns the user's library (non-wishlisted books),
// most recently added first.
func (s *Store) ListBooks(userID int64) ([]*models.Book, error) {
	return s.listBooksWhere(
		"user_id = ? AND is_wishlisted = 0 ORDER BY date_added DESC, created_at DESC", userID)
}

// ListWishlist returns the user's wishlisted books, most recently added first.
func (s *Store) ListWishlist(userID int64) ([]*models.Book, error) {
	return s.listBooksWhere(
		"user_id = ? AND is_wishlisted = 1 ORDER BY date_added DESC, created_at DESC", userID)
}

// ListAllBooks returns library and wishlist together, most recently added first.
func (s *Store) ListAllBooks(userID int64) ([]*models.Book, error) {
	return s.listBooksWhere("user_id = ? ORDER BY date_added DESC, created_at DESC", userID)
}

func (s *Store) listBooksWhere(where string, args ...interface{}) ([]*models.Book, error) {
	rows, err := s.db.Query("SELECT "+bookColumns+" FROM books WHERE "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// UpdateStatus sets the reading status. Transitioning into "completed" stamps
// date_completed with the supplied reference time; moving away from
// "completed" clears it. The first transition into "reading" records
// date_started. Missing ids are a no-op.
func (s *Store) UpdateStatus(userID int64, bookID string, status models.ReadingStatus, now time.Time) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	book, err := s.GetBook(userID, bookID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	var dateCompleted *time.Time
	if status == models.StatusCompleted {
		dateCompleted = &now
	}
	dateStarted := book.DateStarted
	if status == models.StatusReading && dateStarted == nil {
		dateStarted = &now
	}

	_, err = s.db.Exec(`
		UPDATE books SET status = ?, date_completed = ?, date_started = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		status, dateCompleted, dateStarted, now, bookID, userID)
	return err
}

// ToggleFavorite flips the is_favorite flag. Missing ids are a no-op.
func (s *Store) ToggleFavorite(userID int64, bookID string) error {
	_, err := s.db.Exec(`
		UPDATE books SET is_favorite = NOT is_favorite, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, bookID, userID)
	return err
}

// SetWishlisted moves a book between the library and wishlist views. Only the
// flag changes; id and every other field are preserved.
func (s *Store) SetWishlisted(userID int64, bookID string, wishlisted bool) error {
	_, err := s.db.Exec(`
		UPDATE books SET is_wishlisted = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, wishlisted, bookID, userID)
	return err
}

// UpdateRating sets the 1-5 star rating. Out-of-range values are rejected,
// not clamped. Missing ids are a no-op.
func (s *Store) UpdateRating(userID int64, bookID string, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	_, err := s.db.Exec(`
		UPDATE books SET rating = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, rating, bookID, userID)
	return err
}

// UpdateSpiceRating sets the 0-5 content-intensity rating; 0 means unset.
func (s *Store) UpdateSpiceRating(userID int64, bookID string, spice int) error {
	if spice < 0 || spice > 5 {
		return ErrInvalidSpice
	}
	_, err := s.db.Exec(`
		UPDATE books SET spice_rating = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, nullableInt(spice), bookID, userID)
	return err
}

// UpdateReadingProgress stores pagesRead clamped into [0, pages_total]. When
// pages_total is 0 (unknown length) only the lower bound applies.
func (s *Store) UpdateReadingProgress(userID int64, bookID string, pagesRead int) error {
	book, err := s.GetBook(userID, bookID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	if pagesRead < 0 {
		pagesRead = 0
	}
	if book.PagesTotal > 0 && pagesRead > book.PagesTotal {
		pagesRead = book.PagesTotal
	}

	_, err = s.db.Exec(`
		UPDATE books SET pages_read = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`, pagesRead, bookID, userID)
	return err
}

// UpdateBook updates the freely editable fields of a book (title, author,
// cover, genres, series, notes, spice rating, page total). Shrinking the page
// total re-clamps stored progress so pages_read never exceeds it; clearing the
// total to 0 leaves progress alone. Status, rating, progress, and flags have
// dedicated operations with their own rules.
func (s *Store) UpdateBook(userID int64, book *models.Book) error {
	if book.SpiceRating < 0 || book.SpiceRating > 5 {
		return ErrInvalidSpice
	}
	if book.PagesTotal < 0 {
		book.PagesTotal = 0
	}
	genres, err := encodeGenres(book.Genres)
	if err != nil {
		return err
	}
	var seriesName sql.NullString
	var seriesNumber, seriesTotal sql.NullInt64
	if book.Series != nil {
		seriesName = sql.NullString{String: book.Series.Name, Valid: true}
		seriesNumber = sql.NullInt64{Int64: int64(book.Series.Number), Valid: true}
		if book.Series.Total > 0 {
			seriesTotal = sql.NullInt64{Int64: int64(book.Series.Total), Valid: true}
		}
	}

	_, err = s.db.Exec(`
		UPDATE books SET title = ?, author = ?, cover_url = ?, genres = ?,
			series_name = ?, series_number = ?, series_total = ?, notes = ?,
			spice_rating = ?, pages_total = ?,
			pages_read = CASE WHEN ? > 0 THEN MIN(pages_read, ?) ELSE pages_read END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`,
		book.Title, book.Author, book.CoverURL, genres,
		seriesName, seriesNumber, seriesTotal, book.Notes,
		nullableInt(book.SpiceRating), book.PagesTotal,
		book.PagesTotal, book.PagesTotal,
		book.ID, userID)
	return err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBook(row rowScanner) (*models.Book, error) {
	var book models.Book
	var genres string
	var seriesName sql.NullString
	var seriesNumber, seriesTotal sql.NullInt64
	var rating, spice sql.NullInt64
	var dateStarted, dateCompleted sql.NullTime

	err := row.Scan(&book.ID, &book.UserID, &book.Title, &book.Author,
		&book.CoverURL, &genres, &seriesName, &seriesNumber, &seriesTotal,
		&book.Status, &rating, &spice, &book.Notes, &book.ISBN,
		&book.IsFavorite, &book.IsWishlisted, &book.PagesRead, &book.PagesTotal,
		&book.DateAdded, &dateStarted, &dateCompleted,
		&book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(genres), &book.Genres); err != nil {
		return nil, err
	}
	if seriesName.Valid {
		book.Series = &models.Series{
			Name:   seriesName.String,
			Number: int(seriesNumber.Int64),
			Total:  int(seriesTotal.Int64),
		}
	}
	book.Rating = int(rating.Int64)
	book.SpiceRating = int(spice.Int64)
	if dateStarted.Valid {
		book.DateStarted = &dateStarted.Time
	}
	if dateCompleted.Valid {
		book.DateCompleted = &dateCompleted.Time
	}
	return &book, nil
}

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	data, err := json.Marshal(genres)
	return string(data), err
}

// nullableInt maps 0 to NULL so "unset" ratings stay NULL in the database.
func nullableInt(v int) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}
