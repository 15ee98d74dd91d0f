package models

import "gorm.io/gorm"

type SavingGoal struct {
	gorm.Model
	UserID        uint    `json:"user_id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `gorm:"check:target_amount>0" json:"target_amount"`
	CurrentAmount float64 `gorm:"default:0" json:"current_amount"`
	Deadline      string  `json:"deadline"` // yyyy-mm-dd
	Status        string  `gorm:"default:active" json:"status"` // active, completed
}

type SavingLog struct {
	gorm.Model
	UserID uint    `json:"user_id"`
	GoalID uint    `json:"goal_id"`
	Amount float64 `gorm:"check:amount>0" json:"amount"`
	Date   string  `json:"date"` // yyyy-mm-dd
	Note   string  `json:"note"`
}
