package models

import "gorm.io/gorm"

type Lesson struct {
	gorm.Model
	Title           string `json:"title"`
	Category        string `json:"category"`
	Content         string `json:"content"`
	XPReward        int    `gorm:"default:50" json:"xp_reward"`
	DurationMinutes int    `gorm:"default:5" json:"duration_minutes"`
	SourceFile      string `json:"source_file"` // file ref when extracted from an upload
}
