package controllers

import (
	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

type UpdateUserRequest struct {
	Username      string   `json:"username"`
	MonthlyIncome *float64 `json:"monthly_income"`
	OldPassword   string   `json:"old_password"`
	NewPassword   string   `json:"new_password"`
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the authenticated user's profile and progress summary
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	var progress models.UserProgress
	uc.DB.Where("user_id = ?", userID).First(&progress)

	return c.JSON(fiber.Map{
		"id":             user.ID,
		"username":       user.Username,
		"role":           user.Role,
		"monthly_income": user.MonthlyIncome,
		"total_xp":       progress.TotalXP,
		"level":          progress.Level,
		"current_streak": progress.CurrentStreak,
		"badges":         progress.BadgeList(),
	})
}

func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, uc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.MonthlyIncome != nil {
		if *req.MonthlyIncome < 0 {
			return utils.BadRequest(c, "Monthly income cannot be negative")
		}
		user.MonthlyIncome = *req.MonthlyIncome
	}
	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			return utils.Unauthorized(c, "Old password is incorrect")
		}
		if len(req.NewPassword) < 4 {
			return utils.BadRequest(c, "Password must be at least 4 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return utils.InternalServerError(c, "Could not hash password")
		}
		user.PasswordHash = string(hashed)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.Conflict(c, "Could not update profile")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"id":             user.ID,
		"username":       user.Username,
		"monthly_income": user.MonthlyIncome,
	})
}
