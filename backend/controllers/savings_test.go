package controllers_test

import (
	"fmt"
	"testing"
	"time"

	"walletxp/backend/models"
	"walletxp/backend/progression"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCreateGoal(t *testing.T) {
	_, token := createTestUser(t, "saver")

	deadline := time.Now().AddDate(0, 1, 0).Format(progression.DateFormat)
	resp, result := doJSON(t, "POST", "/api/goals/", token, map[string]interface{}{
		"name":          "New Phone",
		"target_amount": 20000,
		"deadline":      deadline,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	goal := result["data"].(map[string]interface{})
	assert.Equal(t, progression.GoalStatusActive, goal["status"])
	assert.Equal(t, float64(0), goal["current_amount"])
}

func TestCreateGoalValidation(t *testing.T) {
	_, token := createTestUser(t, "invalid-goal")

	resp, _ := doJSON(t, "POST", "/api/goals/", token, map[string]interface{}{
		"name":          "",
		"target_amount": 100,
		"deadline":      "2026-12-01",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, "POST", "/api/goals/", token, map[string]interface{}{
		"name":          "Bad deadline",
		"target_amount": 100,
		"deadline":      "tomorrow",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAddSavingCompletesGoal(t *testing.T) {
	user, token := createTestUser(t, "achiever")

	goal := models.SavingGoal{
		UserID:        user.ID,
		Name:          "Trip",
		TargetAmount:  1000,
		CurrentAmount: 800,
		Deadline:      time.Now().AddDate(0, 1, 0).Format(progression.DateFormat),
		Status:        progression.GoalStatusActive,
	}
	assert.NoError(t, db.Create(&goal).Error)

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/goals/%d/savings", goal.ID), token, map[string]interface{}{
		"amount": 300,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, result["goal_completed"])

	var updated models.SavingGoal
	assert.NoError(t, db.First(&updated, goal.ID).Error)
	assert.Equal(t, progression.GoalStatusCompleted, updated.Status)
	assert.Equal(t, 1100.0, updated.CurrentAmount)

	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, progression.GoalCompletionXP, up.TotalXP)
	assert.Contains(t, up.BadgeList(), progression.BadgeGoalAchiever)

	// Depositing into a completed goal is a conflict; no more XP, no
	// second badge.
	resp, _ = doJSON(t, "POST", fmt.Sprintf("/api/goals/%d/savings", goal.ID), token, map[string]interface{}{
		"amount": 50,
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, progression.GoalCompletionXP, up.TotalXP)

	badgeCount := 0
	for _, b := range up.BadgeList() {
		if b == progression.BadgeGoalAchiever {
			badgeCount++
		}
	}
	assert.Equal(t, 1, badgeCount)
}

func TestAddSavingBelowTargetKeepsGoalActive(t *testing.T) {
	user, token := createTestUser(t, "partial")

	goal := models.SavingGoal{
		UserID:       user.ID,
		Name:         "Laptop",
		TargetAmount: 50000,
		Deadline:     time.Now().AddDate(0, 2, 0).Format(progression.DateFormat),
		Status:       progression.GoalStatusActive,
	}
	assert.NoError(t, db.Create(&goal).Error)

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/goals/%d/savings", goal.ID), token, map[string]interface{}{
		"amount": 5000,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, result["goal_completed"])

	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Zero(t, up.TotalXP)

	var logs int64
	db.Model(&models.SavingLog{}).Where("goal_id = ?", goal.ID).Count(&logs)
	assert.Equal(t, int64(1), logs)
}

func TestDailySavingsTargetEndpoint(t *testing.T) {
	user, token := createTestUser(t, "planner")

	goal := models.SavingGoal{
		UserID:        user.ID,
		Name:          "Bike",
		TargetAmount:  1000,
		CurrentAmount: 400,
		Deadline:      time.Now().AddDate(0, 0, 10).Format(progression.DateFormat),
		Status:        progression.GoalStatusActive,
	}
	assert.NoError(t, db.Create(&goal).Error)

	resp, result := doJSON(t, "GET", fmt.Sprintf("/api/goals/%d/target", goal.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(60), result["daily_target"])
	assert.Equal(t, float64(600), result["remaining"])
}
