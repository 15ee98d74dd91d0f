package progression

import (
	"math/rand"
	"time"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	spinWheelDuration     = 1
	defaultWeeklyDuration = 7
)

// ChallengeInfo is the slice of a challenge definition the engine needs.
type ChallengeInfo struct {
	ID              uint
	Title           string
	XPReward        int
	SavingsEstimate float64
	IsWeekly        bool
	DurationDays    int
}

// Acceptance is a freshly started challenge run.
type Acceptance struct {
	ChallengeID uint
	Status      string
	StartDate   string
	EndDate     string
}

// HistoryRecord is the side-effect record emitted on completion.
type HistoryRecord struct {
	ChallengeID    uint
	ChallengeTitle string
	XPEarned       int
	SavingsEarned  float64
	CompletedDate  string
	DurationDays   int
}

// IsTerminalStatus reports whether a user challenge can no longer move.
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusFailed
}

// Duration is the challenge run length in days: spin-wheel challenges last a
// single day, weekly ones use their configured duration (default 7).
func (ch ChallengeInfo) Duration() int {
	if !ch.IsWeekly {
		return spinWheelDuration
	}
	if ch.DurationDays > 0 {
		return ch.DurationDays
	}
	return defaultWeeklyDuration
}

// AcceptChallenge starts a new run today. end_date = today + duration.
func AcceptChallenge(ch ChallengeInfo, today time.Time) Acceptance {
	return Acceptance{
		ChallengeID: ch.ID,
		Status:      StatusActive,
		StartDate:   today.Format(DateFormat),
		EndDate:     today.AddDate(0, 0, ch.Duration()).Format(DateFormat),
	}
}

// IsExpired reports whether an active run's end date is in the past.
// Completing on the end date itself still counts.
func IsExpired(endDate string, today time.Time) bool {
	if endDate == "" {
		return false
	}
	end, err := time.Parse(DateFormat, endDate)
	if err != nil {
		return false
	}
	day, _ := time.Parse(DateFormat, today.Format(DateFormat))
	return day.After(end)
}

// CompleteChallenge finishes an active run: increments the counter, credits
// the estimated savings, awards the full XP reward regardless of how early
// the run finished, and emits the history record. A run already in a
// terminal status is rejected with ErrAlreadyCompleted and no mutation.
func (s Snapshot) CompleteChallenge(ch ChallengeInfo, runStatus string, today time.Time) (Snapshot, HistoryRecord, []string, error) {
	if IsTerminalStatus(runStatus) {
		return s, HistoryRecord{}, nil, ErrAlreadyCompleted
	}
	if runStatus != StatusActive {
		return s, HistoryRecord{}, nil, ErrInvalidTransition
	}

	next, unlocked, err := s.ApplyXPGain(ch.XPReward)
	if err != nil {
		return s, HistoryRecord{}, nil, err
	}
	next.CompletedChallengesCount++
	next.TotalSavings += ch.SavingsEstimate

	record := HistoryRecord{
		ChallengeID:    ch.ID,
		ChallengeTitle: ch.Title,
		XPEarned:       ch.XPReward,
		SavingsEarned:  ch.SavingsEstimate,
		CompletedDate:  today.Format(DateFormat),
		DurationDays:   ch.Duration(),
	}
	return next, record, unlocked, nil
}

// Wheel draws spin-wheel challenges from an injectable random source so
// tests can pin outcomes.
type Wheel struct {
	rng *rand.Rand
}

func NewWheel(seed int64) *Wheel {
	return &Wheel{rng: rand.New(rand.NewSource(seed))}
}

func (w *Wheel) Spin(challenges []ChallengeInfo) (ChallengeInfo, error) {
	if len(challenges) == 0 {
		return ChallengeInfo{}, ErrEmptyWheel
	}
	return challenges[w.rng.Intn(len(challenges))], nil
}
