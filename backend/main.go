package main

import (
	"log"
	"time"

	"walletxp/backend/config"
	"walletxp/backend/middleware"
	"walletxp/backend/progression"
	"walletxp/backend/routes"
	"walletxp/backend/services"
	"walletxp/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}

	// Seed starter challenges and coupons
	if err := utils.SeedDefaults(db); err != nil {
		log.Fatalf("Error seeding defaults: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// External insight service (OCR / LLM)
	insights := services.NewInsightClient(cfg)

	// Spin wheel random source
	wheel := progression.NewWheel(time.Now().UnixNano())

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, insights, wheel)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
