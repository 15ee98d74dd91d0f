package routes

import (
	"walletxp/backend/config"
	"walletxp/backend/controllers"
	"walletxp/backend/middleware"
	"walletxp/backend/progression"
	"walletxp/backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, insights services.InsightService, wheel *progression.Wheel) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Get("/api/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/progress/overview", authMiddleware, progressController.GetProgressOverview)

	// Budget routes
	budgetController := controllers.NewBudgetController(db, cfg, insights)
	budget := app.Group("/api", authMiddleware)
	budget.Get("/expenses", budgetController.GetExpenses)
	budget.Post("/expenses", budgetController.AddExpense)
	budget.Get("/expenses/summary", budgetController.GetExpenseSummary)
	budget.Post("/expenses/scan", budgetController.ScanReceipt)
	budget.Get("/budget", budgetController.GetBudget)
	budget.Post("/budget", budgetController.SaveBudget)
	budget.Get("/budget/insights", budgetController.GetInsights)

	// Savings routes
	savingsController := controllers.NewSavingsController(db, cfg)
	goals := app.Group("/api/goals", authMiddleware)
	goals.Get("/", savingsController.GetGoals)
	goals.Post("/", savingsController.CreateGoal)
	goals.Post("/:id/savings", savingsController.AddSaving)
	goals.Get("/:id/target", savingsController.GetDailyTarget)
	app.Get("/api/savings/logs", authMiddleware, savingsController.GetSavingLogs)

	// Challenge routes
	challengesController := controllers.NewChallengesController(db, cfg, wheel)
	challenges := app.Group("/api/challenges", authMiddleware)
	challenges.Get("/", challengesController.GetChallenges)
	challenges.Post("/spin", challengesController.Spin)
	challenges.Post("/:id/accept", challengesController.Accept)
	challenges.Post("/:id/complete", challengesController.Complete)
	challenges.Post("/:id/fail", challengesController.Fail)

	// Lesson routes
	lessonsController := controllers.NewLessonsController(db, cfg, insights)
	lessons := app.Group("/api/lessons", authMiddleware)
	lessons.Get("/", lessonsController.GetLessons)
	lessons.Post("/:id/complete", lessonsController.CompleteLesson)
	app.Post("/api/admin/lessons", authMiddleware, adminMiddleware, lessonsController.CreateLesson)
	app.Post("/api/admin/lessons/extract", authMiddleware, adminMiddleware, lessonsController.ExtractLesson)

	// Reward routes
	rewardsController := controllers.NewRewardsController(db, cfg)
	app.Get("/api/coupons", authMiddleware, rewardsController.GetCoupons)
	app.Post("/api/coupons/:id/redeem", authMiddleware, rewardsController.Redeem)
	app.Get("/api/user-coupons", authMiddleware, rewardsController.GetUserCoupons)
	app.Post("/api/user-coupons/:id/use", authMiddleware, rewardsController.UseCoupon)
	app.Get("/api/challenge-history", authMiddleware, rewardsController.GetChallengeHistory)
}
