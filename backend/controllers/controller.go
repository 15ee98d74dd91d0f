package controllers

import (
	"time"

	"walletxp/backend/models"
	"walletxp/backend/progression"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func today() time.Time {
	return time.Now()
}

// lockProgress fetches the user's progress row FOR UPDATE inside tx,
// creating it on first touch. Controllers run read-compute-write against
// this row inside a single transaction so two sessions for the same user
// cannot interleave writes.
func lockProgress(tx *gorm.DB, userID uint) (*models.UserProgress, error) {
	var up models.UserProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&up).Error
	if err == nil {
		return &up, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	up = models.UserProgress{UserID: userID, Level: 1}
	up.SetBadgeList(progression.NewSnapshot().Badges)
	if err := tx.Create(&up).Error; err != nil {
		return nil, err
	}
	return &up, nil
}

func snapshotOf(up *models.UserProgress) progression.Snapshot {
	return progression.Snapshot{
		TotalXP:                  up.TotalXP,
		Level:                    up.Level,
		CurrentStreak:            up.CurrentStreak,
		LongestStreak:            up.LongestStreak,
		Badges:                   up.BadgeList(),
		CompletedLessons:         up.CompletedLessonIDs(),
		CompletedChallengesCount: up.CompletedChallengesCount,
		TotalSavings:             up.TotalSavings,
		LastActivityDate:         up.LastActivityDate,
	}
}

func applySnapshot(up *models.UserProgress, s progression.Snapshot) {
	up.TotalXP = s.TotalXP
	up.Level = s.Level
	up.CurrentStreak = s.CurrentStreak
	up.LongestStreak = s.LongestStreak
	up.SetBadgeList(s.Badges)
	up.SetCompletedLessonIDs(s.CompletedLessons)
	up.CompletedChallengesCount = s.CompletedChallengesCount
	up.TotalSavings = s.TotalSavings
	up.LastActivityDate = s.LastActivityDate
}

func challengeInfo(ch *models.Challenge) progression.ChallengeInfo {
	return progression.ChallengeInfo{
		ID:              ch.ID,
		Title:           ch.Title,
		XPReward:        ch.XPReward,
		SavingsEstimate: ch.SavingsEstimate,
		IsWeekly:        ch.IsWeekly,
		DurationDays:    ch.DurationDays,
	}
}

func goalInfo(goal *models.SavingGoal) progression.GoalInfo {
	return progression.GoalInfo{
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		Deadline:      goal.Deadline,
		Status:        goal.Status,
	}
}

func couponInfo(coupon *models.Coupon) progression.CouponInfo {
	return progression.CouponInfo{
		ID:             coupon.ID,
		Title:          coupon.Title,
		Partner:        coupon.Partner,
		PointsRequired: coupon.PointsRequired,
		ExpiryDays:     coupon.ExpiryDays,
	}
}
