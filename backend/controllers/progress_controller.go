package controllers

import (
	"time"

	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProgressController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressController(db *gorm.DB, cfg *config.Config) *ProgressController {
	return &ProgressController{DB: db, Cfg: cfg}
}

// GetProgress godoc
// @Summary Get progress snapshot
// @Description Returns XP, level, streaks and badges for the dashboard
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progress models.UserProgress
	pc.DB.Where("user_id = ?", userID).First(&progress)

	return c.JSON(fiber.Map{
		"total_xp":                   progress.TotalXP,
		"level":                      progress.Level,
		"current_streak":             progress.CurrentStreak,
		"longest_streak":             progress.LongestStreak,
		"badges":                     progress.BadgeList(),
		"completed_challenges_count": progress.CompletedChallengesCount,
		"total_savings":              progress.TotalSavings,
		"last_activity_date":         progress.LastActivityDate,
	})
}

// GetProgressOverview returns totals plus the last 4 months of activity:
// XP earned from challenges, challenges completed and login frequency.
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, pc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var progress models.UserProgress
	pc.DB.Where("user_id = ?", userID).First(&progress)

	now := time.Now()
	months := make([]models.MonthlyProgress, 4)

	for i := 0; i < 4; i++ {
		month := now.AddDate(0, -i, 0)
		startOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		endOfMonth := startOfMonth.AddDate(0, 1, -1)
		startDay := startOfMonth.Format("2006-01-02")
		endDay := endOfMonth.Format("2006-01-02")

		var xpEarned int
		pc.DB.Model(&models.ChallengeHistory{}).
			Where("user_id = ? AND completed_date BETWEEN ? AND ?", userID, startDay, endDay).
			Select("COALESCE(SUM(xp_earned), 0)").
			Scan(&xpEarned)

		var challengesDone int64
		pc.DB.Model(&models.ChallengeHistory{}).
			Where("user_id = ? AND completed_date BETWEEN ? AND ?", userID, startDay, endDay).
			Count(&challengesDone)

		loginFrequency := make(map[string]int)
		var logins []models.LoginHistory
		pc.DB.Where("user_id = ? AND login_time BETWEEN ? AND ?", userID, startOfMonth, endOfMonth.AddDate(0, 0, 1)).
			Find(&logins)
		for _, login := range logins {
			day := login.LoginTime.Format("2006-01-02")
			loginFrequency[day]++
		}

		months[i] = models.MonthlyProgress{
			Month:          month.Month(),
			Year:           month.Year(),
			XPEarned:       xpEarned,
			ChallengesDone: challengesDone,
			LoginFrequency: loginFrequency,
		}
	}

	return c.JSON(models.ProgressOverview{
		TotalXP:                  progress.TotalXP,
		Level:                    progress.Level,
		CurrentStreak:            progress.CurrentStreak,
		LongestStreak:            progress.LongestStreak,
		Badges:                   progress.BadgeList(),
		CompletedChallengesCount: progress.CompletedChallengesCount,
		TotalSavings:             progress.TotalSavings,
		MonthlyProgress:          months,
	})
}
