package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username      string  `gorm:"unique;not null" json:"username"`
	PasswordHash  string  `gorm:"not null" json:"-"`
	Role          string  `gorm:"default:user" json:"role"` // user, admin
	MonthlyIncome float64 `gorm:"default:0" json:"monthly_income"`
}

type UserProgress struct {
	gorm.Model
	UserID                   uint    `gorm:"uniqueIndex" json:"user_id"`
	TotalXP                  int     `gorm:"default:0" json:"total_xp"`
	Level                    int     `gorm:"default:1" json:"level"`
	CurrentStreak            int     `gorm:"default:0" json:"current_streak"`
	LongestStreak            int     `gorm:"default:0" json:"longest_streak"`
	Badges                   string  `json:"-"` // comma-separated badge names
	CompletedLessons         string  `json:"-"` // comma-separated lesson IDs
	CompletedChallengesCount int     `gorm:"default:0" json:"completed_challenges_count"`
	TotalSavings             float64 `gorm:"default:0" json:"total_savings"`
	LastActivityDate         string  `json:"last_activity_date"` // yyyy-mm-dd
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}

func (up *UserProgress) BadgeList() []string {
	return splitList(up.Badges)
}

func (up *UserProgress) SetBadgeList(badges []string) {
	up.Badges = strings.Join(badges, ",")
}

func (up *UserProgress) CompletedLessonIDs() []uint {
	var ids []uint
	for _, s := range splitList(up.CompletedLessons) {
		if id, err := strconv.ParseUint(s, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

func (up *UserProgress) SetCompletedLessonIDs(ids []uint) {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	up.CompletedLessons = strings.Join(parts, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
