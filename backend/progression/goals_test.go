package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompleteSavingGoal(t *testing.T) {
	// target 1000, saved 800, add 300 -> 1100 >= target.
	goal := GoalInfo{TargetAmount: 1000, CurrentAmount: 1100, Deadline: "2026-06-01", Status: GoalStatusActive}
	s := NewSnapshot()

	goal, next, unlocked, err := CompleteSavingGoal(goal, s)
	assert.NoError(t, err)
	assert.Equal(t, GoalStatusCompleted, goal.Status)
	assert.Equal(t, GoalCompletionXP, next.TotalXP)
	assert.Contains(t, unlocked, BadgeGoalAchiever)

	// Second invocation: no-op signal, no second badge, no extra XP.
	_, again, _, err := CompleteSavingGoal(goal, next)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, next, again)

	count := 0
	for _, b := range next.Badges {
		if b == BadgeGoalAchiever {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCompleteSavingGoalBelowTarget(t *testing.T) {
	goal := GoalInfo{TargetAmount: 1000, CurrentAmount: 400, Status: GoalStatusActive}
	s := NewSnapshot()

	_, next, _, err := CompleteSavingGoal(goal, s)
	assert.ErrorIs(t, err, ErrTargetNotReached)
	assert.Equal(t, s, next)
}

func TestGoalAchieverGrantedOncePerUser(t *testing.T) {
	s := NewSnapshot()
	first := GoalInfo{TargetAmount: 100, CurrentAmount: 100, Status: GoalStatusActive}
	second := GoalInfo{TargetAmount: 200, CurrentAmount: 250, Status: GoalStatusActive}

	_, s, _, err := CompleteSavingGoal(first, s)
	assert.NoError(t, err)
	_, s, unlocked, err := CompleteSavingGoal(second, s)
	assert.NoError(t, err)
	assert.NotContains(t, unlocked, BadgeGoalAchiever)
	assert.Equal(t, 2*GoalCompletionXP, s.TotalXP)
}

func TestDailySavingsTarget(t *testing.T) {
	goal := GoalInfo{TargetAmount: 1000, CurrentAmount: 400, Deadline: "2026-03-11"}

	// 600 remaining over 10 days.
	assert.Equal(t, 60.0, DailySavingsTarget(goal, day("2026-03-01")))

	// Uneven split rounds up.
	goal.CurrentAmount = 300
	assert.Equal(t, 100.0, DailySavingsTarget(goal, day("2026-03-04")))

	// Deadline today or passed: whole remaining amount is due.
	assert.Equal(t, 700.0, DailySavingsTarget(goal, day("2026-03-11")))
	assert.Equal(t, 700.0, DailySavingsTarget(goal, day("2026-04-01")))

	// Nothing left to save.
	goal.CurrentAmount = 1000
	assert.Zero(t, DailySavingsTarget(goal, day("2026-03-01")))
}
