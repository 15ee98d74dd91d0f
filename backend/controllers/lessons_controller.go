package controllers

import (
	"errors"
	"io"

	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/progression"
	"walletxp/backend/services"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LessonsController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Insights services.InsightService
}

func NewLessonsController(db *gorm.DB, cfg *config.Config, insights services.InsightService) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Insights: insights}
}

// GetLessons lists all lessons with the caller's completion state.
func (lc *LessonsController) GetLessons(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var lessons []models.Lesson
	if err := lc.DB.Order("created_at ASC").Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch lessons")
	}

	var progress models.UserProgress
	lc.DB.Where("user_id = ?", userID).First(&progress)
	completed := make(map[uint]bool)
	for _, id := range progress.CompletedLessonIDs() {
		completed[id] = true
	}

	result := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		result = append(result, fiber.Map{
			"id":               lesson.ID,
			"title":            lesson.Title,
			"category":         lesson.Category,
			"content":          lesson.Content,
			"xp_reward":        lesson.XPReward,
			"duration_minutes": lesson.DurationMinutes,
			"completed":        completed[lesson.ID],
		})
	}
	return c.JSON(result)
}

// CompleteLesson awards the lesson XP once per lesson per user.
func (lc *LessonsController) CompleteLesson(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, lc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		return utils.NotFound(c, "Lesson not found")
	}

	var xpEarned int
	var newBadges []string
	err = lc.DB.Transaction(func(tx *gorm.DB) error {
		up, err := lockProgress(tx, userID)
		if err != nil {
			return err
		}

		next, unlocked, err := snapshotOf(up).CompleteLesson(progression.LessonInfo{
			ID:       lesson.ID,
			XPReward: lesson.XPReward,
		})
		if err != nil {
			return err
		}
		xpEarned = lesson.XPReward
		newBadges = unlocked
		applySnapshot(up, next)
		return tx.Save(up).Error
	})
	if errors.Is(err, progression.ErrAlreadyCompleted) {
		return utils.Conflict(c, "Lesson already completed")
	}
	if err != nil {
		return utils.InternalServerError(c, "Could not complete lesson")
	}

	return c.JSON(fiber.Map{
		"lesson_id":  lesson.ID,
		"xp_earned":  xpEarned,
		"new_badges": newBadges,
	})
}

type LessonInput struct {
	Title           string `json:"title"`
	Category        string `json:"category"`
	Content         string `json:"content"`
	XPReward        int    `json:"xp_reward"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CreateLesson publishes a lesson (admin only, see routes).
func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var input LessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Title == "" || input.Content == "" {
		return utils.BadRequest(c, "Title and content are required")
	}
	if input.XPReward <= 0 {
		input.XPReward = 50
	}

	lesson := models.Lesson{
		Title:           input.Title,
		Category:        input.Category,
		Content:         input.Content,
		XPReward:        input.XPReward,
		DurationMinutes: input.DurationMinutes,
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}
	return utils.Created(c, lesson)
}

// ExtractLesson turns an uploaded PDF into a draft lesson through the
// insight service and publishes it (admin only).
func (lc *LessonsController) ExtractLesson(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing lesson file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not read lesson file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.BadRequest(c, "Could not read lesson file")
	}

	fileRef, err := lc.Insights.UploadFile(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return utils.BadGateway(c, "Lesson upload failed")
	}

	draft, err := lc.Insights.ExtractLesson(c.Context(), fileRef)
	if err != nil {
		return utils.BadGateway(c, "Could not extract lesson from file")
	}
	if draft.Title == "" || draft.Content == "" {
		return utils.BadGateway(c, "Extracted lesson is incomplete")
	}

	lesson := models.Lesson{
		Title:           draft.Title,
		Category:        draft.Category,
		Content:         draft.Content,
		XPReward:        50,
		DurationMinutes: draft.DurationMinutes,
		SourceFile:      fileRef,
	}
	if err := lc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not save lesson")
	}
	return utils.Created(c, lesson)
}
