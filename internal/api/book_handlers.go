package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookhive/bookhive-go/internal/library"
	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/bookhive/bookhive-go/internal/store"
)

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	books, err := s.store.ListBooks(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list books")
		return
	}
	RespondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	books, err := s.store.ListWishlist(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list wishlist")
		return
	}
	RespondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleListAllBooks(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	books, err := s.store.ListAllBooks(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list books")
		return
	}
	RespondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if book.Title == "" {
		RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	if err := s.store.AddBook(user.ID, &book, time.Now()); err != nil {
		s.respondStoreError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, book)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	book, err := s.store.GetBook(user.ID, chi.URLParam(r, "bookID"))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var book models.Book
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	book.ID = chi.URLParam(r, "bookID")

	if err := s.store.UpdateBook(user.ID, &book); err != nil {
		s.respondStoreError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, book)
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if err := s.store.RemoveBook(user.ID, chi.URLParam(r, "bookID")); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to remove book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		Status models.ReadingStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.store.UpdateStatus(user.ID, chi.URLParam(r, "bookID"), payload.Status, time.Now()); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateRating(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.store.UpdateRating(user.ID, chi.URLParam(r, "bookID"), payload.Rating); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateSpiceRating(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		SpiceRating int `json:"spice_rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.store.UpdateSpiceRating(user.ID, chi.URLParam(r, "bookID"), payload.SpiceRating); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		PagesRead int `json:"pages_read"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.store.UpdateReadingProgress(user.ID, chi.URLParam(r, "bookID"), payload.PagesRead); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if err := s.store.ToggleFavorite(user.ID, chi.URLParam(r, "bookID")); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSetWishlisted(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		Wishlisted bool `json:"wishlisted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.store.SetWishlisted(user.ID, chi.URLParam(r, "bookID"), payload.Wishlisted); err != nil {
		s.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleUploadCover accepts an image file and replaces the book's cover with
// a generated thumbnail data URI.
func (s *Server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	bookID := chi.URLParam(r, "bookID")

	r.Body = http.MaxBytesReader(w, r.Body, 5<<20) // 5MB limit
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("cover")
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Missing cover file")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to read cover file")
		return
	}

	thumbnail, err := library.GenerateThumbnail(imageData)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	book, err := s.store.GetBook(user.ID, bookID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	book.CoverURL = thumbnail
	if err := s.store.UpdateBook(user.ID, book); err != nil {
		s.respondStoreError(w, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"cover_url": thumbnail})
}

// respondStoreError translates store errors into HTTP responses.
func (s *Server) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		RespondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, store.ErrBookIDConflict):
		RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidRating),
		errors.Is(err, store.ErrInvalidSpice),
		errors.Is(err, store.ErrInvalidGoalTarget),
		errors.Is(err, store.ErrInvalidGoalType),
		errors.Is(err, store.ErrInvalidGoalMonth):
		RespondWithError(w, http.StatusBadRequest, err.Error())
	default:
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
