package store

import (
	"database/sql"
	"time"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/google/uuid"
)

// SetGoal upserts a reading goal keyed on (goal_type, year, month). Setting a
// goal for an existing key replaces its target in place, preserving the id.
// Each mutation is written through immediately; there is no batching.
func (s *Store) SetGoal(userID int64, goalType models.GoalType, targetBooks, year, month int) (*models.ReadingGoal, error) {
	if !goalType.IsValid() {
		return nil, ErrInvalidGoalType
	}
	if targetBooks < 1 {
		return nil, ErrInvalidGoalTarget
	}
	if goalType == models.GoalMonthly && (month < 1 || month > 12) {
		return nil, ErrInvalidGoalMonth
	}
	if goalType == models.GoalYearly {
		month = 0
	}

	var id string
	err := s.db.QueryRow(`
		SELECT id FROM reading_goals
		WHERE user_id = ? AND goal_type = ? AND year = ? AND month = ?`,
		userID, goalType, year, month).Scan(&id)
	if err == sql.ErrNoRows {
		id = uuid.NewString()
		_, err = s.db.Exec(`
			INSERT INTO reading_goals (id, user_id, goal_type, target_books, year, month)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, userID, goalType, targetBooks, year, month)
	} else if err == nil {
		_, err = s.db.Exec(`
			UPDATE reading_goals SET target_books = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`, targetBooks, id)
	}
	if err != nil {
		return nil, err
	}

	return &models.ReadingGoal{
		ID:          id,
		UserID:      userID,
		GoalType:    goalType,
		TargetBooks: targetBooks,
		Year:        year,
		Month:       month,
	}, nil
}

// RemoveGoal deletes a goal by id. Missing ids are a no-op.
func (s *Store) RemoveGoal(userID int64, goalID string) error {
	_, err := s.db.Exec("DELETE FROM reading_goals WHERE id = ? AND user_id = ?", goalID, userID)
	return err
}

// ListGoals returns all of the user's goals.
func (s *Store) ListGoals(userID int64) ([]*models.ReadingGoal, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, goal_type, target_books, year, month
		FROM reading_goals WHERE user_id = ? ORDER BY year, goal_type, month`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*models.ReadingGoal
	for rows.Next() {
		var g models.ReadingGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetBooks, &g.Year, &g.Month); err != nil {
			return nil, err
		}
		goals = append(goals, &g)
	}
	return goals, rows.Err()
}

// GetYearlyGoal looks up the goal for a year. Returns nil when none exists.
func (s *Store) GetYearlyGoal(userID int64, year int) (*models.ReadingGoal, error) {
	return s.getGoalByKey(userID, models.GoalYearly, year, 0)
}

// GetMonthlyGoal looks up the goal for a (year, month). Returns nil when none exists.
func (s *Store) GetMonthlyGoal(userID int64, year, month int) (*models.ReadingGoal, error) {
	return s.getGoalByKey(userID, models.GoalMonthly, year, month)
}

// CurrentYearlyGoal resolves the yearly goal for the supplied reference date.
// The lookup happens at call time so a year boundary changes the answer.
func (s *Store) CurrentYearlyGoal(userID int64, now time.Time) (*models.ReadingGoal, error) {
	return s.GetYearlyGoal(userID, now.Year())
}

// CurrentMonthlyGoal resolves the monthly goal for the supplied reference date.
func (s *Store) CurrentMonthlyGoal(userID int64, now time.Time) (*models.ReadingGoal, error) {
	return s.GetMonthlyGoal(userID, now.Year(), int(now.Month()))
}

func (s *Store) getGoalByKey(userID int64, goalType models.GoalType, year, month int) (*models.ReadingGoal, error) {
	var g models.ReadingGoal
	err := s.db.QueryRow(`
		SELECT id, user_id, goal_type, target_books, year, month
		FROM reading_goals
		WHERE user_id = ? AND goal_type = ? AND year = ? AND month = ?`,
		userID, goalType, year, month).
		Scan(&g.ID, &g.UserID, &g.GoalType, &g.TargetBooks, &g.Year, &g.Month)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
