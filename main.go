package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/config"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/middleware"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/routes"
	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/utils"
)

func main() {
	// Initialize logger
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	app.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(app, config.DB, log)

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "running",
			"title":     config.AppConfig.AppTitle,
			"smtp_host": config.AppConfig.SMTPHost,
			"smtp_port": config.AppConfig.SMTPPort,
			"smtp_user": utils.MaskedEmail(config.AppConfig.SMTPUser),
		})
	})

	// Start server
	log.Infof("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
