package models

import "gorm.io/gorm"

type Coupon struct {
	gorm.Model
	Title          string `json:"title"`
	Description    string `json:"description"`
	Partner        string `json:"partner"`  // swiggy, zomato, uber, ola, amazon, flipkart, bigbasket, myntra, bookmyshow, other
	Category       string `json:"category"` // expense category the coupon is recommended against
	PointsRequired int    `json:"points_required"`
	ExpiryDays     int    `gorm:"default:30" json:"expiry_days"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
}

type UserCoupon struct {
	gorm.Model
	UserID       uint   `json:"user_id"`
	CouponID     uint   `json:"coupon_id"`
	CouponTitle  string `json:"coupon_title"`
	Partner      string `json:"partner"`
	Code         string `json:"code"`
	Status       string `gorm:"default:available" json:"status"` // available, used
	RedeemedDate string `json:"redeemed_date"`                   // yyyy-mm-dd
	ExpiryDate   string `json:"expiry_date"`
	UsedDate     string `json:"used_date"`
	PointsSpent  int    `json:"points_spent"`
}
