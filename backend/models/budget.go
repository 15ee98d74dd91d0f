package models

import "gorm.io/gorm"

// ExpenseCategories is the fixed set of tags accepted on expenses and used
// by the receipt scanner schema.
var ExpenseCategories = []string{
	"food", "transport", "shopping", "entertainment", "utilities",
	"healthcare", "education", "groceries", "rent", "other",
}

type Expense struct {
	gorm.Model
	UserID      uint    `json:"user_id"`
	Amount      float64 `gorm:"check:amount>=0" json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // yyyy-mm-dd
	IsFixed     bool    `gorm:"default:false" json:"is_fixed"`
}

type Budget struct {
	gorm.Model
	UserID         uint    `json:"user_id"`
	Month          string  `json:"month"` // yyyy-mm
	MonthlyIncome  float64 `json:"monthly_income"`
	CategoryLimits string  `json:"category_limits"` // JSON object: category -> limit
}

func IsValidCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}
