package models

import "gorm.io/gorm"

type Challenge struct {
	gorm.Model
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	XPReward        int     `json:"xp_reward"`
	SavingsEstimate float64 `gorm:"default:0" json:"savings_estimate"`
	IsWeekly        bool    `gorm:"default:false" json:"is_weekly"`
	DurationDays    int     `gorm:"default:7" json:"duration_days"`
}

// UserChallenge is one acceptance of a challenge definition. Terminal
// statuses are never reopened; a fresh acceptance creates a new row.
type UserChallenge struct {
	gorm.Model
	UserID        uint   `json:"user_id"`
	ChallengeID   uint   `json:"challenge_id"`
	Status        string `gorm:"default:pending" json:"status"` // pending, active, completed, failed
	StartDate     string `json:"start_date"`                    // yyyy-mm-dd
	EndDate       string `json:"end_date"`
	CompletedDate string `json:"completed_date"`
}

type ChallengeHistory struct {
	gorm.Model
	UserID         uint    `json:"user_id"`
	ChallengeID    uint    `json:"challenge_id"`
	ChallengeTitle string  `json:"challenge_title"`
	XPEarned       int     `json:"xp_earned"`
	SavingsEarned  float64 `json:"savings_earned"`
	CompletedDate  string  `json:"completed_date"`
	DurationDays   int     `json:"duration_days"`
}
