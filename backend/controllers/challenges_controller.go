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

type ChallengesController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Wheel *progression.Wheel
}

func NewChallengesController(db *gorm.DB, cfg *config.Config, wheel *progression.Wheel) *ChallengesController {
	return &ChallengesController{DB: db, Cfg: cfg, Wheel: wheel}
}

// GetChallenges lists challenge definitions together with the caller's runs.
// Active runs past their end date are swept to failed on the way out.
func (cc *ChallengesController) GetChallenges(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if err := cc.expireOverdue(userID); err != nil {
		return utils.InternalServerError(c, "Could not update challenges")
	}

	var challenges []models.Challenge
	if err := cc.DB.Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch challenges")
	}

	var runs []models.UserChallenge
	if err := cc.DB.Where("user_id = ?", userID).Find(&runs).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch challenge runs")
	}

	return c.JSON(fiber.Map{
		"challenges":      challenges,
		"user_challenges": runs,
	})
}

// Spin draws a spin-wheel (non-weekly) challenge.
func (cc *ChallengesController) Spin(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, cc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var challenges []models.Challenge
	if err := cc.DB.Where("is_weekly = ?", false).Find(&challenges).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch challenges")
	}

	infos := make([]progression.ChallengeInfo, len(challenges))
	for i := range challenges {
		infos[i] = challengeInfo(&challenges[i])
	}

	drawn, err := cc.Wheel.Spin(infos)
	if err != nil {
		return utils.NotFound(c, "No spin-wheel challenges available")
	}

	for i := range challenges {
		if challenges[i].ID == drawn.ID {
			return c.JSON(challenges[i])
		}
	}
	return utils.InternalServerError(c, "Draw did not match a challenge")
}

// Accept starts a new run of a challenge: active immediately, end date set
// by the challenge duration. A run already active for this challenge is a
// conflict; terminal runs stay closed and a fresh row is created instead.
func (cc *ChallengesController) Accept(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	challengeID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	var challenge models.Challenge
	if err := cc.DB.First(&challenge, challengeID).Error; err != nil {
		return utils.NotFound(c, "Challenge not found")
	}

	var existing models.UserChallenge
	err = cc.DB.Where("user_id = ? AND challenge_id = ? AND status IN ?",
		userID, challenge.ID, []string{progression.StatusPending, progression.StatusActive}).
		First(&existing).Error
	if err == nil {
		return utils.Conflict(c, "Challenge already accepted")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not check challenge state")
	}

	acc := progression.AcceptChallenge(challengeInfo(&challenge), today())
	run := models.UserChallenge{
		UserID:      userID,
		ChallengeID: acc.ChallengeID,
		Status:      acc.Status,
		StartDate:   acc.StartDate,
		EndDate:     acc.EndDate,
	}
	if err := cc.DB.Create(&run).Error; err != nil {
		return utils.InternalServerError(c, "Could not accept challenge")
	}
	return utils.Created(c, run)
}

// Complete finishes an active run and awards XP and savings through the
// engine. The runs param is the user challenge row ID.
func (cc *ChallengesController) Complete(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	runID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	var run models.UserChallenge
	if err := cc.DB.Where("id = ? AND user_id = ?", runID, userID).First(&run).Error; err != nil {
		return utils.NotFound(c, "Challenge run not found")
	}

	// An overdue run fails instead of completing.
	if run.Status == progression.StatusActive && progression.IsExpired(run.EndDate, today()) {
		run.Status = progression.StatusFailed
		if err := cc.DB.Save(&run).Error; err != nil {
			return utils.InternalServerError(c, "Could not update challenge")
		}
		return utils.Conflict(c, "Challenge has expired")
	}

	var record progression.HistoryRecord
	var newBadges []string

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", runID, userID).
			First(&run).Error; err != nil {
			return err
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, run.ChallengeID).Error; err != nil {
			return err
		}

		up, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		next, rec, unlocked, err := snapshotOf(up).CompleteChallenge(challengeInfo(&challenge), run.Status, today())
		if err != nil {
			return err
		}
		record = rec
		newBadges = unlocked

		run.Status = progression.StatusCompleted
		run.CompletedDate = rec.CompletedDate
		if err := tx.Save(&run).Error; err != nil {
			return err
		}

		history := models.ChallengeHistory{
			UserID:         userID,
			ChallengeID:    rec.ChallengeID,
			ChallengeTitle: rec.ChallengeTitle,
			XPEarned:       rec.XPEarned,
			SavingsEarned:  rec.SavingsEarned,
			CompletedDate:  rec.CompletedDate,
			DurationDays:   rec.DurationDays,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		applySnapshot(up, next)
		return tx.Save(up).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(c, "Challenge run not found")
	}
	if errors.Is(err, progression.ErrAlreadyCompleted) || errors.Is(err, progression.ErrInvalidTransition) {
		return utils.Conflict(c, "Challenge already finished")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not complete challenge")
	}

	return c.JSON(fiber.Map{
		"run":        run,
		"xp_earned":  record.XPEarned,
		"new_badges": newBadges,
	})
}

// Fail closes an active run with no XP effect.
func (cc *ChallengesController) Fail(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, cc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	runID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid challenge ID")
	}

	var run models.UserChallenge
	if err := cc.DB.Where("id = ? AND user_id = ?", runID, userID).First(&run).Error; err != nil {
		return utils.NotFound(c, "Challenge run not found")
	}
	if progression.IsTerminalStatus(run.Status) {
		return utils.Conflict(c, "Challenge already finished")
	}

	run.Status = progression.StatusFailed
	if err := cc.DB.Save(&run).Error; err != nil {
		return utils.InternalServerError(c, "Could not update challenge")
	}
	return c.JSON(run)
}

// expireOverdue sweeps the caller's active runs whose end date has passed.
func (cc *ChallengesController) expireOverdue(userID uint) error {
	var runs []models.UserChallenge
	if err := cc.DB.Where("user_id = ? AND status = ?", userID, progression.StatusActive).
		Find(&runs).Error; err != nil {
		return err
	}

	for i := range runs {
		if progression.IsExpired(runs[i].EndDate, today()) {
			runs[i].Status = progression.StatusFailed
			if err := cc.DB.Save(&runs[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
