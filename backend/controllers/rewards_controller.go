package controllers

import (
	"errors"

	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/progression"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewRewardsController(db *gorm.DB, cfg *config.Config) *RewardsController {
	return &RewardsController{DB: db, Cfg: cfg}
}

// GetCoupons lists the active catalog and flags the ones recommended
// against the caller's top spending category.
func (rc *RewardsController) GetCoupons(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var coupons []models.Coupon
	if err := rc.DB.Where("is_active = ?", true).Find(&coupons).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch coupons")
	}

	topCategory := rc.topSpendingCategory(userID)

	var progress models.UserProgress
	rc.DB.Where("user_id = ?", userID).First(&progress)

	result := make([]fiber.Map, 0, len(coupons))
	for _, coupon := range coupons {
		result = append(result, fiber.Map{
			"id":              coupon.ID,
			"title":           coupon.Title,
			"description":     coupon.Description,
			"partner":         coupon.Partner,
			"category":        coupon.Category,
			"points_required": coupon.PointsRequired,
			"expiry_days":     coupon.ExpiryDays,
			"recommended":     topCategory != "" && coupon.Category == topCategory,
			"affordable":      progress.TotalXP >= coupon.PointsRequired,
		})
	}

	return c.JSON(fiber.Map{
		"coupons":      result,
		"total_xp":     progress.TotalXP,
		"top_category": topCategory,
	})
}

// Redeem exchanges XP for a coupon instance. Insufficient balance is a
// conflict with no mutation.
func (rc *RewardsController) Redeem(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	couponID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid coupon ID")
	}

	var coupon models.Coupon
	if err := rc.DB.First(&coupon, couponID).Error; err != nil {
		return utils.NotFound(c, "Coupon not found")
	}
	if !coupon.IsActive {
		return utils.Conflict(c, "Coupon is no longer available")
	}

	var userCoupon models.UserCoupon
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		up, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		next, redeemed, err := snapshotOf(up).Redeem(couponInfo(&coupon), today())
		if err != nil {
			return err
		}

		userCoupon = models.UserCoupon{
			UserID:       userID,
			CouponID:     redeemed.CouponID,
			CouponTitle:  redeemed.CouponTitle,
			Partner:      redeemed.Partner,
			Code:         redeemed.Code,
			Status:       redeemed.Status,
			RedeemedDate: redeemed.RedeemedDate,
			ExpiryDate:   redeemed.ExpiryDate,
			PointsSpent:  redeemed.PointsSpent,
		}
		if err := tx.Create(&userCoupon).Error; err != nil {
			return err
		}

		applySnapshot(up, next)
		return tx.Save(up).Error
	})
	if errors.Is(err, progression.ErrInsufficientXP) {
		return utils.Conflict(c, "Not enough XP for this coupon")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not redeem coupon")
	}

	return utils.Created(c, userCoupon)
}

// UseCoupon marks a redeemed coupon as used.
func (rc *RewardsController) UseCoupon(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	userCouponID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid coupon ID")
	}

	var userCoupon models.UserCoupon
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", userCouponID, userID).
			First(&userCoupon).Error; err != nil {
			return err
		}

		status, usedDate, err := progression.MarkCouponUsed(userCoupon.Status, today())
		if err != nil {
			return err
		}
		userCoupon.Status = status
		userCoupon.UsedDate = usedDate
		return tx.Save(&userCoupon).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Coupon not found")
	}
	if errors.Is(err, progression.ErrAlreadyUsed) {
		return utils.Conflict(c, "Coupon already used")
	}
	if errors.Is(err, progression.ErrInvalidTransition) {
		return utils.Conflict(c, "Coupon cannot be used")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not update coupon")
	}

	return c.JSON(userCoupon)
}

func (rc *RewardsController) GetUserCoupons(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := rc.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var coupons []models.UserCoupon
	if err := query.Find(&coupons).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch coupons")
	}
	return c.JSON(coupons)
}

func (rc *RewardsController) GetChallengeHistory(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, rc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var history []models.ChallengeHistory
	if err := rc.DB.Where("user_id = ?", userID).
		Order("completed_date DESC").
		Find(&history).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch history")
	}
	return c.JSON(history)
}

func (rc *RewardsController) topSpendingCategory(userID uint) string {
	type row struct {
		Category string
		Total    float64
	}
	var top row
	rc.DB.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("category, SUM(amount) AS total").
		Group("category").
		Order("total DESC").
		Limit(1).
		Scan(&top)
	return top.Category
}
