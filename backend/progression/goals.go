package progression

import (
	"math"
	"time"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

// GoalInfo is the slice of a saving goal the engine needs.
type GoalInfo struct {
	TargetAmount  float64
	CurrentAmount float64
	Deadline      string // yyyy-mm-dd
	Status        string
}

// CompleteSavingGoal transitions a goal active -> completed once the saved
// amount reaches the target. Awards the fixed goal bonus and the
// "Goal Achiever" badge (at most once, separate from the level ladder).
// An already completed goal is a no-op signalled with ErrAlreadyCompleted;
// the transition never runs backwards.
func CompleteSavingGoal(goal GoalInfo, s Snapshot) (GoalInfo, Snapshot, []string, error) {
	if goal.Status == GoalStatusCompleted {
		return goal, s, nil, ErrAlreadyCompleted
	}
	if goal.CurrentAmount < goal.TargetAmount {
		return goal, s, nil, ErrTargetNotReached
	}

	next, unlocked, err := s.ApplyXPGain(GoalCompletionXP)
	if err != nil {
		return goal, s, nil, err
	}
	if !next.HasBadge(BadgeGoalAchiever) {
		next = next.withBadge(BadgeGoalAchiever)
		unlocked = append(unlocked, BadgeGoalAchiever)
	}
	goal.Status = GoalStatusCompleted
	return goal, next, unlocked, nil
}

// DailySavingsTarget is the amount to put aside each day to hit the goal by
// its deadline. When the deadline is today or already passed the whole
// remaining amount is due.
func DailySavingsTarget(goal GoalInfo, today time.Time) float64 {
	remaining := goal.TargetAmount - goal.CurrentAmount
	if remaining <= 0 {
		return 0
	}
	days := daysUntil(goal.Deadline, today)
	if days < 1 {
		return remaining
	}
	return math.Ceil(remaining / float64(days))
}

func daysUntil(deadline string, today time.Time) int {
	end, err := time.Parse(DateFormat, deadline)
	if err != nil {
		return 0
	}
	day, _ := time.Parse(DateFormat, today.Format(DateFormat))
	return int(end.Sub(day).Hours() / 24)
}
