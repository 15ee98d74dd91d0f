package controllers

import (
	"errors"
	"time"

	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/progression"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavingsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSavingsController(db *gorm.DB, cfg *config.Config) *SavingsController {
	return &SavingsController{DB: db, Cfg: cfg}
}

type CreateGoalInput struct {
	Name         string  `json:"name"`
	TargetAmount float64 `json:"target_amount"`
	Deadline     string  `json:"deadline"`
}

func (sc *SavingsController) GetGoals(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := sc.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var goals []models.SavingGoal
	if err := query.Find(&goals).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch goals")
	}
	return c.JSON(goals)
}

func (sc *SavingsController) CreateGoal(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input CreateGoalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Name == "" || input.TargetAmount <= 0 {
		return utils.BadRequest(c, "Name and a positive target amount are required")
	}
	if _, err := time.Parse(progression.DateFormat, input.Deadline); err != nil {
		return utils.BadRequest(c, "Deadline must be a yyyy-mm-dd date")
	}

	goal := models.SavingGoal{
		UserID:       userID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
		Deadline:     input.Deadline,
		Status:       progression.GoalStatusActive,
	}
	if err := sc.DB.Create(&goal).Error; err != nil {
		return utils.InternalServerError(c, "Could not create goal")
	}
	return utils.Created(c, goal)
}

type AddSavingInput struct {
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// AddSaving logs a deposit against a goal. Crossing the target completes
// the goal through the engine: +500 XP and the Goal Achiever badge, once.
func (sc *SavingsController) AddSaving(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	var input AddSavingInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount <= 0 {
		return utils.BadRequest(c, "Amount must be positive")
	}

	var goal models.SavingGoal
	var completed bool
	var newBadges []string

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error; err != nil {
			return err
		}
		if goal.Status == progression.GoalStatusCompleted {
			return progression.ErrAlreadyCompleted
		}

		log := models.SavingLog{
			UserID: userID,
			GoalID: goal.ID,
			Amount: input.Amount,
			Date:   today().Format(progression.DateFormat),
			Note:   input.Note,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		goal.CurrentAmount += input.Amount
		if goal.CurrentAmount >= goal.TargetAmount {
			up, err := lockProgress(tx, userID)
			if err != nil {
				return err
			}
			nextGoal, next, unlocked, err := progression.CompleteSavingGoal(goalInfo(&goal), snapshotOf(up))
			if err != nil {
				return err
			}
			goal.Status = nextGoal.Status
			completed = true
			newBadges = unlocked
			applySnapshot(up, next)
			if err := tx.Save(up).Error; err != nil {
				return err
			}
		}
		return tx.Save(&goal).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Goal not found")
	}
	if errors.Is(err, progression.ErrAlreadyCompleted) {
		return utils.Conflict(c, "Goal is already completed")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not add saving")
	}

	return c.JSON(fiber.Map{
		"goal":           goal,
		"goal_completed": completed,
		"new_badges":     newBadges,
	})
}

// GetDailyTarget returns the per-day amount needed to reach the goal by its
// deadline.
func (sc *SavingsController) GetDailyTarget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	goalID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid goal ID")
	}

	var goal models.SavingGoal
	if err := sc.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		return utils.NotFound(c, "Goal not found")
	}

	return c.JSON(fiber.Map{
		"goal_id":      goal.ID,
		"daily_target": progression.DailySavingsTarget(goalInfo(&goal), today()),
		"remaining":    goal.TargetAmount - goal.CurrentAmount,
	})
}

func (sc *SavingsController) GetSavingLogs(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var logs []models.SavingLog
	if err := sc.DB.Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch saving logs")
	}
	return c.JSON(logs)
}
