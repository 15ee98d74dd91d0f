package utils

import (
	"walletxp/backend/models"

	"gorm.io/gorm"
)

// defaultChallenges is the spin-wheel set plus the weekly starters.
var defaultChallenges = []models.Challenge{
	{Title: "Walk Instead of Uber", Description: "Take a walk instead of booking a cab today", XPReward: 50, SavingsEstimate: 150},
	{Title: "No Food Delivery", Description: "Cook at home instead of ordering food", XPReward: 75, SavingsEstimate: 250},
	{Title: "Skip Coffee Shop", Description: "Make coffee at home instead of buying", XPReward: 30, SavingsEstimate: 100},
	{Title: "Free Entertainment", Description: "Watch free content instead of paid streaming", XPReward: 40, SavingsEstimate: 120},
	{Title: "Pack Lunch", Description: "Bring lunch from home to work", XPReward: 60, SavingsEstimate: 200},
	{Title: "No Online Shopping", Description: "Avoid any online purchases today", XPReward: 80, SavingsEstimate: 400},
	{Title: "Use Public Transport", Description: "Take bus/metro instead of personal vehicle", XPReward: 45, SavingsEstimate: 130},
	{Title: "DIY Day", Description: "Do something yourself instead of paying for service", XPReward: 55, SavingsEstimate: 180},
	{Title: "No-Spend Week", Description: "Only essential spending for seven days", XPReward: 300, SavingsEstimate: 1500, IsWeekly: true, DurationDays: 7},
	{Title: "Home Chef Week", Description: "Cook every meal at home this week", XPReward: 250, SavingsEstimate: 1200, IsWeekly: true, DurationDays: 7},
	{Title: "Savings Sprint", Description: "Put aside 500 every day this week", XPReward: 350, SavingsEstimate: 3500, IsWeekly: true, DurationDays: 7},
}

var defaultCoupons = []models.Coupon{
	{Title: "20% off your next order", Partner: "swiggy", Category: "food", PointsRequired: 300, ExpiryDays: 30},
	{Title: "Flat 150 off dining", Partner: "zomato", Category: "food", PointsRequired: 250, ExpiryDays: 30},
	{Title: "15% off your next ride", Partner: "uber", Category: "transport", PointsRequired: 200, ExpiryDays: 21},
	{Title: "Flat 100 off rides", Partner: "ola", Category: "transport", PointsRequired: 180, ExpiryDays: 21},
	{Title: "10% off electronics", Partner: "amazon", Category: "shopping", PointsRequired: 500, ExpiryDays: 45},
	{Title: "Extra 12% off fashion", Partner: "myntra", Category: "shopping", PointsRequired: 400, ExpiryDays: 30},
	{Title: "Flat 200 off groceries", Partner: "bigbasket", Category: "groceries", PointsRequired: 350, ExpiryDays: 14},
	{Title: "Buy 1 Get 1 movie ticket", Partner: "bookmyshow", Category: "entertainment", PointsRequired: 450, ExpiryDays: 30},
}

// SeedDefaults fills empty challenge and coupon tables with the starter
// catalog. Existing rows are left alone.
func SeedDefaults(db *gorm.DB) error {
	var challengeCount int64
	if err := db.Model(&models.Challenge{}).Count(&challengeCount).Error; err != nil {
		return err
	}
	if challengeCount == 0 {
		if err := db.Create(&defaultChallenges).Error; err != nil {
			return err
		}
	}

	var couponCount int64
	if err := db.Model(&models.Coupon{}).Count(&couponCount).Error; err != nil {
		return err
	}
	if couponCount == 0 {
		if err := db.Create(&defaultCoupons).Error; err != nil {
			return err
		}
	}
	return nil
}
