// Package progression holds the XP, level, streak and badge rules shared by
// every feature controller. All functions are pure: they take a snapshot,
// return the next snapshot and never touch the database.
package progression

import "time"

const (
	XPPerLevel        = 1000
	GoalCompletionXP  = 500
	StreakBonusPerDay = 10
	MaxStreakBonus    = 100

	DateFormat = "2006-01-02"

	BadgeBeginner     = "Beginner"
	BadgeGoalAchiever = "Goal Achiever"
)

// levelBadges is the milestone ladder. BadgeBeginner is granted at account
// creation, BadgeGoalAchiever on the first completed saving goal; neither
// belongs to the ladder.
var levelBadges = map[int]string{
	5:  "Bronze Saver",
	10: "Silver Saver",
	15: "Gold Saver",
	20: "Platinum Saver",
	25: "Diamond Saver",
}

// Snapshot is the engine's view of a user's progress record.
type Snapshot struct {
	TotalXP                  int
	Level                    int
	CurrentStreak            int
	LongestStreak            int
	Badges                   []string
	CompletedLessons         []uint
	CompletedChallengesCount int
	TotalSavings             float64
	LastActivityDate         string // yyyy-mm-dd, empty before first activity
}

// LevelForXP derives the level from total XP. Level is never stored on its
// own authority; every operation re-derives it through this function.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/XPPerLevel + 1
}

// NewSnapshot is the state of a freshly created account.
func NewSnapshot() Snapshot {
	return Snapshot{
		Level:  1,
		Badges: []string{BadgeBeginner},
	}
}

// ApplyXPGain adds amount to the snapshot's XP and re-derives the level.
// Every milestone level crossed by the gain unlocks its ladder badge, so a
// single large gain cannot skip a badge. Returns the badges unlocked by
// this gain. amount must be positive.
func (s Snapshot) ApplyXPGain(amount int) (Snapshot, []string, error) {
	if amount <= 0 {
		return s, nil, ErrInvalidAmount
	}

	prevLevel := s.Level
	s.TotalXP += amount
	s.Level = LevelForXP(s.TotalXP)

	var unlocked []string
	for lvl := prevLevel + 1; lvl <= s.Level; lvl++ {
		name, ok := levelBadges[lvl]
		if !ok || s.HasBadge(name) {
			continue
		}
		s = s.withBadge(name)
		unlocked = append(unlocked, name)
	}
	return s, unlocked, nil
}

// RecordDailyActivity advances the streak for today. Calling it twice on the
// same calendar day is a no-op. A streak continues only when the last
// activity was yesterday; any gap resets it to 1. The streak bonus
// (streak*10, capped at 100, streaks of 1 earn nothing) is folded through
// ApplyXPGain. Returns the bonus XP awarded and any badges unlocked by it.
func (s Snapshot) RecordDailyActivity(today time.Time) (Snapshot, int, []string) {
	day := today.Format(DateFormat)
	if s.LastActivityDate == day {
		return s, 0, nil
	}

	yesterday := today.AddDate(0, 0, -1).Format(DateFormat)
	if s.LastActivityDate == yesterday {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 1
	}
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivityDate = day

	bonus := 0
	var unlocked []string
	if s.CurrentStreak > 1 {
		bonus = s.CurrentStreak * StreakBonusPerDay
		if bonus > MaxStreakBonus {
			bonus = MaxStreakBonus
		}
		s, unlocked, _ = s.ApplyXPGain(bonus)
	}
	return s, bonus, unlocked
}

// HasBadge reports set membership regardless of unlock order.
func (s Snapshot) HasBadge(name string) bool {
	for _, b := range s.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// withBadge returns a copy with the badge appended. Callers check HasBadge
// first; the copy keeps the receiver's slice unaliased.
func (s Snapshot) withBadge(name string) Snapshot {
	badges := make([]string, len(s.Badges), len(s.Badges)+1)
	copy(badges, s.Badges)
	s.Badges = append(badges, name)
	return s
}
