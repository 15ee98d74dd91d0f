package models

import "time"

type MonthlyProgress struct {
	Month          time.Month     `json:"month"`
	Year           int            `json:"year"`
	XPEarned       int            `json:"xp_earned"`
	ChallengesDone int64          `json:"challenges_done"`
	LoginFrequency map[string]int `json:"login_frequency"` // day -> count
}

type ProgressOverview struct {
	TotalXP                  int               `json:"total_xp"`
	Level                    int               `json:"level"`
	CurrentStreak            int               `json:"current_streak"`
	LongestStreak            int               `json:"longest_streak"`
	Badges                   []string          `json:"badges"`
	CompletedChallengesCount int               `json:"completed_challenges_count"`
	TotalSavings             float64           `json:"total_savings"`
	MonthlyProgress          []MonthlyProgress `json:"monthly_progress"`
}
