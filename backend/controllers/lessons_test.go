package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"walletxp/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestCompleteLessonOnce(t *testing.T) {
	user, token := createTestUser(t, "learner")

	lesson := models.Lesson{Title: "Budgeting 101", Content: "Spend less than you earn.", XPReward: 150}
	assert.NoError(t, db.Create(&lesson).Error)

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/lessons/%d/complete", lesson.ID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(150), result["xp_earned"])

	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, 150, up.TotalXP)
	assert.Contains(t, up.CompletedLessonIDs(), lesson.ID)

	// Completing twice must not double-award XP.
	resp, _ = doJSON(t, "POST", fmt.Sprintf("/api/lessons/%d/complete", lesson.ID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, 150, up.TotalXP)
}

func TestGetLessonsShowsCompletion(t *testing.T) {
	user, token := createTestUser(t, "reader")

	done := models.Lesson{Title: "Done lesson", Content: "x", XPReward: 50}
	todo := models.Lesson{Title: "Todo lesson", Content: "y", XPReward: 50}
	assert.NoError(t, db.Create(&done).Error)
	assert.NoError(t, db.Create(&todo).Error)

	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	up.SetCompletedLessonIDs([]uint{done.ID})
	assert.NoError(t, db.Save(&up).Error)

	req := httptest.NewRequest("GET", "/api/lessons/", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var lessons []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&lessons))

	states := make(map[string]bool)
	for _, lesson := range lessons {
		states[lesson["title"].(string)] = lesson["completed"].(bool)
	}
	assert.True(t, states["Done lesson"])
	assert.False(t, states["Todo lesson"])
}

func TestCreateLessonRequiresAdmin(t *testing.T) {
	_, token := createTestUser(t, "notadmin")

	resp, _ := doJSON(t, "POST", "/api/admin/lessons", token, map[string]interface{}{
		"title":   "Sneaky lesson",
		"content": "body",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminCreatesLesson(t *testing.T) {
	admin, token := createTestUser(t, "lessonadmin")
	assert.NoError(t, db.Model(&models.User{}).Where("id = ?", admin.ID).Update("role", "admin").Error)

	resp, result := doJSON(t, "POST", "/api/admin/lessons", token, map[string]interface{}{
		"title":     "Emergency Funds",
		"category":  "saving",
		"content":   "Keep three months of expenses aside.",
		"xp_reward": 120,
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	lesson := result["data"].(map[string]interface{})
	assert.Equal(t, "Emergency Funds", lesson["title"])
	assert.Equal(t, float64(120), lesson["xp_reward"])
}
