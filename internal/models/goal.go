package models

// GoalType distinguishes yearly from monthly reading goals.
type GoalType string

const (
	GoalMonthly GoalType = "monthly"
	GoalYearly  GoalType = "yearly"
)

// IsValid reports whether t is a known goal type.
func (t GoalType) IsValid() bool {
	return t == GoalMonthly || t == GoalYearly
}

// ReadingGoal is a user-declared target count of books to complete within a
// yearly or monthly period. At most one goal exists per
// (goal_type, year, month) key; Month is 0 for yearly goals.
type ReadingGoal struct {
	ID          string   `json:"id"`
	UserID      int64    `json:"-"`
	GoalType    GoalType `json:"goal_type"`
	TargetBooks int      `json:"target_books"`
	Year        int      `json:"year"`
	Month       int      `json:"month,omitempty"` // 1-12 for monthly, 0 for yearly
}
