package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/bookhive/bookhive-go/internal/store"
	"github.com/bookhive/bookhive-go/internal/testutil"
)

func newTestStore(t *testing.T) (*store.Store, int64) {
	t.Helper()
	st := store.New(testutil.SetupTestDB(t))
	user, err := st.CreateUser("reader", "hash", "user")
	require.NoError(t, err)
	return st, user.ID
}

func sampleBook(title string) *models.Book {
	return &models.Book{
		Title:      title,
		Author:     "Jane Author",
		Genres:     []string{"Fantasy", "Romance"},
		PagesTotal: 320,
	}
}

func TestAddBookAssignsDefaults(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("The First One")
	require.NoError(t, st.AddBook(userID, book, now))

	assert.NotEmpty(t, book.ID)
	assert.Equal(t, models.StatusToRead, book.Status)
	assert.Equal(t, now, book.DateAdded)

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "The First One", stored.Title)
	assert.Equal(t, []string{"Fantasy", "Romance"}, stored.Genres)
	assert.Equal(t, 320, stored.PagesTotal)
}

func TestAddBookIsIdempotentOnID(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Original")
	book.ID = "fixed-id"
	require.NoError(t, st.AddBook(userID, book, now))

	dupe := sampleBook("Imposter")
	dupe.ID = "fixed-id"
	require.NoError(t, st.AddBook(userID, dupe, now), "re-adding the same id must not error")

	stored, err := st.GetBook(userID, "fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "Original", stored.Title, "the existing record must not be overwritten")

	books, err := st.ListAllBooks(userID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestAddBookRejectsForeignID(t *testing.T) {
	st, userID := newTestStore(t)
	other, err := st.CreateUser("other", "hash", "user")
	require.NoError(t, err)

	book := sampleBook("Mine First")
	book.ID = "contested-id"
	require.NoError(t, st.AddBook(userID, book, time.Now()))

	dupe := sampleBook("Interloper")
	dupe.ID = "contested-id"
	assert.ErrorIs(t, st.AddBook(other.ID, dupe, time.Now()), store.ErrBookIDConflict)

	stored, err := st.GetBook(userID, "contested-id")
	require.NoError(t, err)
	assert.Equal(t, "Mine First", stored.Title, "the owner's record must survive")

	books, err := st.ListAllBooks(other.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAddBookClampsProgress(t *testing.T) {
	st, userID := newTestStore(t)

	book := sampleBook("Overcounted")
	book.PagesTotal = 100
	book.PagesRead = 500
	require.NoError(t, st.AddBook(userID, book, time.Now()))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.PagesRead, "progress clamps to the page total on insert")

	unknown := sampleBook("Unknown Length")
	unknown.PagesTotal = 0
	unknown.PagesRead = -3
	require.NoError(t, st.AddBook(userID, unknown, time.Now()))

	stored, err = st.GetBook(userID, unknown.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PagesRead)
}

func TestAddBookValidatesRatings(t *testing.T) {
	st, userID := newTestStore(t)

	starry := sampleBook("Too Starry")
	starry.Rating = 99
	assert.ErrorIs(t, st.AddBook(userID, starry, time.Now()), store.ErrInvalidRating)

	spicy := sampleBook("Too Spicy")
	spicy.SpiceRating = 6
	assert.ErrorIs(t, st.AddBook(userID, spicy, time.Now()), store.ErrInvalidSpice)

	books, err := st.ListAllBooks(userID)
	require.NoError(t, err)
	assert.Empty(t, books, "rejected books must not be inserted")
}

func TestAddBookDerivesCompletionDate(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	done := sampleBook("Already Done")
	done.Status = models.StatusCompleted
	require.NoError(t, st.AddBook(userID, done, now))

	stored, err := st.GetBook(userID, done.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DateCompleted)
	assert.Equal(t, now.Unix(), stored.DateCompleted.Unix())

	// A completion date on a book that is not completed is dropped.
	stale := now.AddDate(0, -1, 0)
	queued := sampleBook("Still Queued")
	queued.Status = models.StatusToRead
	queued.DateCompleted = &stale
	require.NoError(t, st.AddBook(userID, queued, now))

	stored, err = st.GetBook(userID, queued.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateCompleted)
}

func TestListBooksExcludesWishlist(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	owned := sampleBook("Owned")
	require.NoError(t, st.AddBook(userID, owned, now))

	wished := sampleBook("Wished")
	wished.IsWishlisted = true
	require.NoError(t, st.AddBook(userID, wished, now))

	library, err := st.ListBooks(userID)
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, "Owned", library[0].Title)

	wishlist, err := st.ListWishlist(userID)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.Equal(t, "Wished", wishlist[0].Title)
}

func TestUpdateStatusStampsCompletionDate(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Status Test")
	require.NoError(t, st.AddBook(userID, book, now))

	completedAt := now.Add(time.Hour)
	require.NoError(t, st.UpdateStatus(userID, book.ID, models.StatusCompleted, completedAt))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
	require.NotNil(t, stored.DateCompleted)
	assert.Equal(t, completedAt.Unix(), stored.DateCompleted.Unix())

	// Moving away from completed clears the completion date.
	require.NoError(t, st.UpdateStatus(userID, book.ID, models.StatusPaused, completedAt.Add(time.Hour)))
	stored, err = st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DateCompleted)
}

func TestUpdateStatusRecordsFirstStart(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Start Test")
	require.NoError(t, st.AddBook(userID, book, now))

	firstStart := now.Add(time.Hour)
	require.NoError(t, st.UpdateStatus(userID, book.ID, models.StatusReading, firstStart))
	require.NoError(t, st.UpdateStatus(userID, book.ID, models.StatusPaused, firstStart.Add(time.Hour)))
	require.NoError(t, st.UpdateStatus(userID, book.ID, models.StatusReading, firstStart.Add(2*time.Hour)))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DateStarted)
	assert.Equal(t, firstStart.Unix(), stored.DateStarted.Unix(), "only the first start is recorded")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	st, userID := newTestStore(t)
	err := st.UpdateStatus(userID, "whatever", models.ReadingStatus("binge-read"), time.Now())
	assert.ErrorIs(t, err, store.ErrInvalidStatus)
}

func TestUpdateStatusMissingBookIsNoOp(t *testing.T) {
	st, userID := newTestStore(t)
	assert.NoError(t, st.UpdateStatus(userID, "no-such-id", models.StatusReading, time.Now()))
}

func TestUpdateRatingBounds(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Rating Test")
	require.NoError(t, st.AddBook(userID, book, now))

	assert.ErrorIs(t, st.UpdateRating(userID, book.ID, 0), store.ErrInvalidRating)
	assert.ErrorIs(t, st.UpdateRating(userID, book.ID, 6), store.ErrInvalidRating)
	require.NoError(t, st.UpdateRating(userID, book.ID, 5))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Rating)
}

func TestUpdateReadingProgressClamps(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Progress Test") // 320 pages
	require.NoError(t, st.AddBook(userID, book, now))

	require.NoError(t, st.UpdateReadingProgress(userID, book.ID, 5000))
	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 320, stored.PagesRead, "progress clamps to the page total")

	require.NoError(t, st.UpdateReadingProgress(userID, book.ID, -10))
	stored, err = st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PagesRead)
}

func TestSetWishlistedPreservesFields(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Wishlist Move")
	require.NoError(t, st.AddBook(userID, book, now))
	require.NoError(t, st.UpdateRating(userID, book.ID, 4))

	require.NoError(t, st.SetWishlisted(userID, book.ID, true))
	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsWishlisted)
	assert.Equal(t, book.ID, stored.ID, "the id survives the move")
	assert.Equal(t, 4, stored.Rating, "other fields survive the move")

	require.NoError(t, st.SetWishlisted(userID, book.ID, false))
	stored, err = st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsWishlisted)
}

func TestToggleFavorite(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Fave")
	require.NoError(t, st.AddBook(userID, book, now))

	require.NoError(t, st.ToggleFavorite(userID, book.ID))
	stored, _ := st.GetBook(userID, book.ID)
	assert.True(t, stored.IsFavorite)

	require.NoError(t, st.ToggleFavorite(userID, book.ID))
	stored, _ = st.GetBook(userID, book.ID)
	assert.False(t, stored.IsFavorite)
}

func TestRemoveBook(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Doomed")
	require.NoError(t, st.AddBook(userID, book, now))
	require.NoError(t, st.RemoveBook(userID, book.ID))

	_, err := st.GetBook(userID, book.ID)
	assert.Error(t, err)

	// Removing again is a no-op.
	assert.NoError(t, st.RemoveBook(userID, book.ID))
}

func TestBooksAreScopedToUser(t *testing.T) {
	st, userID := newTestStore(t)
	other, err := st.CreateUser("other", "hash", "user")
	require.NoError(t, err)

	book := sampleBook("Private")
	require.NoError(t, st.AddBook(userID, book, time.Now()))

	_, err = st.GetBook(other.ID, book.ID)
	assert.Error(t, err, "another user must not see the book")

	books, err := st.ListBooks(other.ID)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestUpdateBookEditableFields(t *testing.T) {
	st, userID := newTestStore(t)
	now := time.Now()

	book := sampleBook("Before")
	require.NoError(t, st.AddBook(userID, book, now))

	book.Title = "After"
	book.Series = &models.Series{Name: "The Cycle", Number: 2, Total: 5}
	book.Notes = "loved it"
	require.NoError(t, st.UpdateBook(userID, book))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", stored.Title)
	require.NotNil(t, stored.Series)
	assert.Equal(t, "The Cycle", stored.Series.Name)
	assert.Equal(t, 5, stored.Series.Total)
	assert.Equal(t, "loved it", stored.Notes)
}

func TestUpdateBookReclampsProgress(t *testing.T) {
	st, userID := newTestStore(t)

	book := sampleBook("Shrinking Edition") // 320 pages
	require.NoError(t, st.AddBook(userID, book, time.Now()))
	require.NoError(t, st.UpdateReadingProgress(userID, book.ID, 300))

	book.PagesTotal = 100
	require.NoError(t, st.UpdateBook(userID, book))

	stored, err := st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.PagesTotal)
	assert.Equal(t, 100, stored.PagesRead, "progress follows a shrinking page total")

	// Clearing the page total keeps the recorded progress.
	book.PagesTotal = 0
	require.NoError(t, st.UpdateBook(userID, book))

	stored, err = st.GetBook(userID, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.PagesTotal)
	assert.Equal(t, 100, stored.PagesRead)
}
