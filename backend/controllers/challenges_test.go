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

func createChallenge(t *testing.T, ch models.Challenge) models.Challenge {
	t.Helper()
	if err := db.Create(&ch).Error; err != nil {
		t.Fatal(err)
	}
	return ch
}

func TestAcceptWeeklyChallenge(t *testing.T) {
	_, token := createTestUser(t, "acceptor")
	ch := createChallenge(t, models.Challenge{Title: "Weekly Save", XPReward: 200, IsWeekly: true, DurationDays: 7})

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/accept", ch.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	run := result["data"].(map[string]interface{})
	assert.Equal(t, progression.StatusActive, run["status"])

	start, _ := time.Parse(progression.DateFormat, run["start_date"].(string))
	end, _ := time.Parse(progression.DateFormat, run["end_date"].(string))
	assert.Equal(t, 7*24*time.Hour, end.Sub(start))

	// A second acceptance while the first is active is a conflict.
	resp, _ = doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/accept", ch.ID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAcceptSpinChallengeLastsOneDay(t *testing.T) {
	_, token := createTestUser(t, "spinner")
	ch := createChallenge(t, models.Challenge{Title: "Skip Coffee", XPReward: 30})

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/accept", ch.ID), token, nil)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	run := result["data"].(map[string]interface{})
	start, _ := time.Parse(progression.DateFormat, run["start_date"].(string))
	end, _ := time.Parse(progression.DateFormat, run["end_date"].(string))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestCompleteChallengeAwardsXP(t *testing.T) {
	user, token := createTestUser(t, "completer")
	ch := createChallenge(t, models.Challenge{Title: "No Delivery", XPReward: 75, SavingsEstimate: 250, IsWeekly: true, DurationDays: 7})

	_, result := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/accept", ch.ID), token, nil)
	runID := result["data"].(map[string]interface{})["ID"].(float64)

	resp, result := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%.0f/complete", runID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(75), result["xp_earned"])

	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, 75, up.TotalXP)
	assert.Equal(t, 1, up.CompletedChallengesCount)
	assert.Equal(t, 250.0, up.TotalSavings)

	var history models.ChallengeHistory
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&history).Error)
	assert.Equal(t, 75, history.XPEarned)
	assert.Equal(t, ch.ID, history.ChallengeID)

	// Completing the same run again is a conflict and awards nothing.
	resp, _ = doJSON(t, "POST", fmt.Sprintf("/api/challenges/%.0f/complete", runID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Equal(t, 75, up.TotalXP)
}

func TestFailChallenge(t *testing.T) {
	user, token := createTestUser(t, "failer")
	ch := createChallenge(t, models.Challenge{Title: "Too Hard", XPReward: 100, IsWeekly: true})

	_, result := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/accept", ch.ID), token, nil)
	runID := result["data"].(map[string]interface{})["ID"].(float64)

	resp, _ := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%.0f/fail", runID), token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Failing is terminal and has no XP effect.
	var up models.UserProgress
	assert.NoError(t, db.Where("user_id = ?", user.ID).First(&up).Error)
	assert.Zero(t, up.TotalXP)

	resp, _ = doJSON(t, "POST", fmt.Sprintf("/api/challenges/%.0f/complete", runID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSpinDrawsNonWeeklyChallenge(t *testing.T) {
	_, token := createTestUser(t, "wheeler")
	createChallenge(t, models.Challenge{Title: "Spin A", XPReward: 50})
	createChallenge(t, models.Challenge{Title: "Spin B", XPReward: 60})

	resp, result := doJSON(t, "POST", "/api/challenges/spin", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, result["is_weekly"])
	assert.NotEmpty(t, result["title"])
}

func TestExpiredRunFailsOnComplete(t *testing.T) {
	user, token := createTestUser(t, "expired")
	ch := createChallenge(t, models.Challenge{Title: "Yesterday", XPReward: 40})

	yesterday := time.Now().AddDate(0, 0, -2).Format(progression.DateFormat)
	run := models.UserChallenge{
		UserID:      user.ID,
		ChallengeID: ch.ID,
		Status:      progression.StatusActive,
		StartDate:   yesterday,
		EndDate:     time.Now().AddDate(0, 0, -1).Format(progression.DateFormat),
	}
	assert.NoError(t, db.Create(&run).Error)

	resp, _ := doJSON(t, "POST", fmt.Sprintf("/api/challenges/%d/complete", run.ID), token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var updated models.UserChallenge
	assert.NoError(t, db.First(&updated, run.ID).Error)
	assert.Equal(t, progression.StatusFailed, updated.Status)
}
