package api

import (
	"net/http"
	"time"

	"github.com/bookhive/bookhive-go/internal/social"
)

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	books, ok := s.libraryBooks(w, r)
	if !ok {
		return
	}
	RespondWithJSON(w, http.StatusOK, social.EvaluateAchievements(books, time.Now()))
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, social.MockFeed(time.Now()))
}
