package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/bookhive-go/internal/models"
	"github.com/bookhive/bookhive-go/internal/store"
)

func TestSetGoalUpsertPreservesID(t *testing.T) {
	st, userID := newTestStore(t)

	first, err := st.SetGoal(userID, models.GoalYearly, 24, 2026, 0)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := st.SetGoal(userID, models.GoalYearly, 30, 2026, 0)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "setting the same period replaces in place")
	assert.Equal(t, 30, second.TargetBooks)

	goals, err := st.ListGoals(userID)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestSetGoalSeparateKeys(t *testing.T) {
	st, userID := newTestStore(t)

	_, err := st.SetGoal(userID, models.GoalYearly, 24, 2026, 0)
	require.NoError(t, err)
	_, err = st.SetGoal(userID, models.GoalMonthly, 3, 2026, 2)
	require.NoError(t, err)
	_, err = st.SetGoal(userID, models.GoalMonthly, 4, 2026, 3)
	require.NoError(t, err)

	goals, err := st.ListGoals(userID)
	require.NoError(t, err)
	assert.Len(t, goals, 3)
}

func TestSetGoalValidation(t *testing.T) {
	st, userID := newTestStore(t)

	_, err := st.SetGoal(userID, models.GoalType("weekly"), 5, 2026, 0)
	assert.ErrorIs(t, err, store.ErrInvalidGoalType)

	_, err = st.SetGoal(userID, models.GoalYearly, 0, 2026, 0)
	assert.ErrorIs(t, err, store.ErrInvalidGoalTarget)

	_, err = st.SetGoal(userID, models.GoalMonthly, 5, 2026, 13)
	assert.ErrorIs(t, err, store.ErrInvalidGoalMonth)

	_, err = st.SetGoal(userID, models.GoalMonthly, 5, 2026, 0)
	assert.ErrorIs(t, err, store.ErrInvalidGoalMonth)
}

func TestYearlyGoalIgnoresMonth(t *testing.T) {
	st, userID := newTestStore(t)

	goal, err := st.SetGoal(userID, models.GoalYearly, 24, 2026, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, goal.Month, "yearly goals normalize month to 0")
}

func TestCurrentGoalsFollowReferenceDate(t *testing.T) {
	st, userID := newTestStore(t)

	_, err := st.SetGoal(userID, models.GoalYearly, 24, 2026, 0)
	require.NoError(t, err)
	_, err = st.SetGoal(userID, models.GoalMonthly, 3, 2026, 2)
	require.NoError(t, err)

	feb2026 := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	yearly, err := st.CurrentYearlyGoal(userID, feb2026)
	require.NoError(t, err)
	require.NotNil(t, yearly)
	assert.Equal(t, 24, yearly.TargetBooks)

	monthly, err := st.CurrentMonthlyGoal(userID, feb2026)
	require.NoError(t, err)
	require.NotNil(t, monthly)
	assert.Equal(t, 3, monthly.TargetBooks)

	// A month later there is no monthly goal.
	mar2026 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	monthly, err = st.CurrentMonthlyGoal(userID, mar2026)
	require.NoError(t, err)
	assert.Nil(t, monthly)

	// A year later there is no yearly goal either.
	jan2027 := time.Date(2027, 1, 10, 0, 0, 0, 0, time.UTC)
	yearly, err = st.CurrentYearlyGoal(userID, jan2027)
	require.NoError(t, err)
	assert.Nil(t, yearly)
}

func TestRemoveGoal(t *testing.T) {
	st, userID := newTestStore(t)

	goal, err := st.SetGoal(userID, models.GoalYearly, 24, 2026, 0)
	require.NoError(t, err)

	require.NoError(t, st.RemoveGoal(userID, goal.ID))
	goals, err := st.ListGoals(userID)
	require.NoError(t, err)
	assert.Empty(t, goals)

	// Removing again is a no-op.
	assert.NoError(t, st.RemoveGoal(userID, goal.ID))
}
