package controllers

import (
	"errors"
	"io"
	"time"

	"walletxp/backend/config"
	"walletxp/backend/models"
	"walletxp/backend/progression"
	"walletxp/backend/services"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BudgetController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Insights services.InsightService
}

func NewBudgetController(db *gorm.DB, cfg *config.Config, insights services.InsightService) *BudgetController {
	return &BudgetController{DB: db, Cfg: cfg, Insights: insights}
}

type ExpenseInput struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	IsFixed     bool    `json:"is_fixed"`
}

func (bc *BudgetController) GetExpenses(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	query := bc.DB.Where("user_id = ?", userID).Order("date DESC")
	if month := c.Query("month"); month != "" {
		query = query.Where("date LIKE ?", month+"%")
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return utils.InternalServerError(c, "Could not fetch expenses")
	}
	return c.JSON(expenses)
}

func (bc *BudgetController) AddExpense(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Amount < 0 {
		return utils.BadRequest(c, "Amount cannot be negative")
	}
	if !models.IsValidCategory(input.Category) {
		return utils.BadRequest(c, "Unknown expense category")
	}
	if input.Date == "" {
		input.Date = time.Now().Format(progression.DateFormat)
	}

	expense := models.Expense{
		UserID:      userID,
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		IsFixed:     input.IsFixed,
	}
	if err := bc.DB.Create(&expense).Error; err != nil {
		return utils.InternalServerError(c, "Could not save expense")
	}
	return utils.Created(c, expense)
}

// GetExpenseSummary returns per-category totals for a month (defaults to
// the current one); feeds the spending chart and coupon recommendations.
func (bc *BudgetController) GetExpenseSummary(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	month := c.Query("month", time.Now().Format("2006-01"))

	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	bc.DB.Model(&models.Expense{}).
		Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Select("category, SUM(amount) AS total").
		Group("category").
		Scan(&rows)

	summary := make(map[string]float64, len(rows))
	var total float64
	for _, r := range rows {
		summary[r.Category] = r.Total
		total += r.Total
	}

	return c.JSON(fiber.Map{
		"month":       month,
		"total":       total,
		"by_category": summary,
	})
}

type BudgetInput struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	CategoryLimits string  `json:"category_limits"`
}

func (bc *BudgetController) GetBudget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	month := c.Query("month", time.Now().Format("2006-01"))

	var budget models.Budget
	if err := bc.DB.Where("user_id = ? AND month = ?", userID, month).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "No budget for this month")
		}
		return utils.InternalServerError(c, "Could not fetch budget")
	}
	return c.JSON(budget)
}

// SaveBudget upserts the budget row for the month.
func (bc *BudgetController) SaveBudget(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var input BudgetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	month := c.Query("month", time.Now().Format("2006-01"))

	var budget models.Budget
	err = bc.DB.Where("user_id = ? AND month = ?", userID, month).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		budget = models.Budget{UserID: userID, Month: month}
	} else if err != nil {
		return utils.InternalServerError(c, "Could not fetch budget")
	}

	budget.MonthlyIncome = input.MonthlyIncome
	budget.CategoryLimits = input.CategoryLimits
	if err := bc.DB.Save(&budget).Error; err != nil {
		return utils.InternalServerError(c, "Could not save budget")
	}
	return utils.Success(c, fiber.StatusOK, budget)
}

// ScanReceipt uploads a receipt image and extracts the expense fields
// through the insight service. Nothing is persisted; the client confirms
// the prefilled expense before AddExpense.
func (bc *BudgetController) ScanReceipt(c *fiber.Ctx) error {
	if _, err := utils.ExtractUserIDFromToken(c, bc.Cfg); err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return utils.BadRequest(c, "Missing receipt file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.BadRequest(c, "Could not read receipt file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.BadRequest(c, "Could not read receipt file")
	}

	fileRef, err := bc.Insights.UploadFile(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return utils.BadGateway(c, "Receipt upload failed")
	}

	receipt, err := bc.Insights.ExtractReceipt(c.Context(), fileRef)
	if err != nil {
		return utils.BadGateway(c, "Could not extract data from receipt")
	}

	category := receipt.Category
	if !models.IsValidCategory(category) {
		category = "other"
	}
	description := receipt.Description
	if description == "" {
		description = receipt.VendorName
	}
	if description == "" {
		description = "Scanned expense"
	}

	return c.JSON(fiber.Map{
		"amount":      receipt.TotalAmount,
		"category":    category,
		"description": description,
		"date":        receipt.Date,
	})
}

// GetInsights asks the LLM collaborator for saving tips and suggested
// category limits based on the current month's spending.
func (bc *BudgetController) GetInsights(c *fiber.Ctx) error {
	userID, err := utils.ExtractUserIDFromToken(c, bc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	var user models.User
	if err := bc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	month := time.Now().Format("2006-01")
	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	bc.DB.Model(&models.Expense{}).
		Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Select("category, SUM(amount) AS total").
		Group("category").
		Scan(&rows)

	spend := make(map[string]float64, len(rows))
	for _, r := range rows {
		spend[r.Category] = r.Total
	}

	advice, err := bc.Insights.SuggestBudget(c.Context(), user.MonthlyIncome, spend)
	if err != nil {
		return utils.BadGateway(c, "Insight service unavailable")
	}
	return c.JSON(advice)
}
