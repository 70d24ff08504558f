package api

import (
	"net/http"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/bookhive/bookhive-go/internal/stats"
)

const recommendationLimit = 5

// libraryBooks loads the user's library snapshot for the stats handlers.
// Wishlist entries are excluded; they have not been read.
func (s *Server) libraryBooks(w http.ResponseWriter, r *http.Request) ([]*models.Book, bool) {
	user := getUserFromContext(r)
	books, err := s.store.ListBooks(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list books")
		return nil, false
	}
	return books, true
}

func (s *Server) handleStatsSummary(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.Summarize(books, time.Now()))
}

func (s *Server) handleStatsMonthly(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.MonthlyCompletions(books, time.Now()))
}

func (s *Server) handleStatsGenres(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.GenreDistribution(books))
}

func (s *Server) handleStatsPace(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.ReadingPace(books, time.Now()))
}

func (s *Server) handleStatsSeries(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.SeriesCompleteness(books))
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, stats.Recommend(books, recommendationLimit))
}
