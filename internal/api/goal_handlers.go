package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/bookhive/bookhive-go/internal/stats"
)

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	goals, err := s.store.ListGoals(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	RespondWithJSON(w, http.StatusOK, goals)
}

// handleSetGoal creates or updates the goal for its (type, year, month) key.
// Year and month default to the current period when omitted.
func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)

	var payload struct {
		GoalType    models.GoalType `json:"goal_type"`
		TargetBooks int             `json:"target_books"`
		Year        int             `json:"year"`
		Month       int             `json:"month"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	now := time.Now()
	if payload.Year == 0 {
		payload.Year = now.Year()
	}
	if payload.GoalType == models.GoalMonthly && payload.Month == 0 {
		payload.Month = int(now.Month())
	}

	goal, err := s.store.SetGoal(user.ID, payload.GoalType, payload.TargetBooks, payload.Year, payload.Month)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, goal)
}

func (s *Server) handleRemoveGoal(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if err := s.store.RemoveGoal(user.ID, chi.URLParam(r, "goalID")); err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to remove goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGoalProgress reports progress against the current yearly and monthly
// goals. A period with no goal set reports null.
func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	now := time.Now()

	books, err := s.store.ListBooks(user.ID)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to list books")
		return
	}

	response := struct {
		Yearly  *stats.GoalProgress `json:"yearly"`
		Monthly *stats.GoalProgress `json:"monthly"`
	}{}

	yearly, err := s.store.CurrentYearlyGoal(user.ID, now)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load yearly goal")
		return
	}
	if yearly != nil {
		p := stats.GoalProgressOf(yearly, books)
		response.Yearly = &p
	}

	monthly, err := s.store.CurrentMonthlyGoal(user.ID, now)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to load monthly goal")
		return
	}
	if monthly != nil {
		p := stats.GoalProgressOf(monthly, books)
		response.Monthly = &p
	}

	RespondWithJSON(w, http.StatusOK, response)
}
