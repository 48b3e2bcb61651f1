package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/gabai/gabai-backend/internal/ai"
	"github.com/gabai/gabai-backend/internal/api"
	"github.com/gabai/gabai-backend/internal/api/handlers"
	"github.com/gabai/gabai-backend/internal/auth"
	"github.com/gabai/gabai-backend/internal/chat"
	"github.com/gabai/gabai-backend/internal/chat/localstore"
	"github.com/gabai/gabai-backend/internal/chat/mockai"
	"github.com/gabai/gabai-backend/internal/chat/pgstore"
	"github.com/gabai/gabai-backend/internal/config"
	"github.com/gabai/gabai-backend/internal/database"
	"github.com/gabai/gabai-backend/internal/dataset"
	"github.com/gabai/gabai-backend/internal/repository/postgres"
)

func main() {
	// Local .env is optional; real deployments use the environment.
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GabAi Backend",
		BodyLimit:    25 * 1024 * 1024, // attachments arrive base64-inflated
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getOrigins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.DB)
	authSessionRepo := postgres.NewUserSessionRepository(db.DB)
	departmentRepo := postgres.NewDepartmentRepository(db.DB)
	courseRepo := postgres.NewCourseRepository(db.DB)
	scholarshipRepo := postgres.NewScholarshipRepository(db.DB)
	facultyRepo := postgres.NewFacultyRepository(db.DB)
	mapLocationRepo := postgres.NewMapLocationRepository(db.DB)

	// Initialize auth service
	jwtSecret := os.Getenv("GABAI_JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production" // Default for development
		log.Println("WARNING: Using default JWT secret. Set GABAI_JWT_SECRET in production!")
	}
	authService := auth.NewService(userRepo, authSessionRepo, jwtSecret)

	// Chat session persistence: per-user JSON files by default, the
	// chat_snapshots table when configured for postgres.
	var adapter chat.Adapter
	switch cfg.Chat.Storage {
	case "postgres":
		adapter = pgstore.New(db.DB)
	default:
		adapter, err = localstore.New(cfg.Chat.DataDir)
		if err != nil {
			log.Fatal("Failed to open chat data directory:", err)
		}
	}
	chatManager := chat.NewManager(adapter, chat.Config{
		SessionSwitchDelay: cfg.Chat.SessionSwitchDelay,
	})

	datasetStore, err := dataset.NewStore(cfg.Chat.DataDir)
	if err != nil {
		log.Fatal("Failed to open dataset storage:", err)
	}

	resolver := mockai.NewResolver(mockai.DefaultRules, mockai.Config{
		MinDelay: cfg.Chat.TypingDelayMin,
		MaxDelay: cfg.Chat.TypingDelayMax,
	})
	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.Model)

	// Setup routes
	api.SetupRoutes(app, api.Handlers{
		Auth:    handlers.NewAuthHandlers(authService, chatManager),
		Campus:  handlers.NewCampusHandlers(departmentRepo, courseRepo, scholarshipRepo, facultyRepo, mapLocationRepo),
		Session: handlers.NewSessionHandlers(chatManager),
		Chat:    handlers.NewChatHandlers(chatManager, resolver, aiClient),
		Users:   handlers.NewUserHandlers(userRepo),
		Dataset: handlers.NewDatasetHandlers(datasetStore),
	}, authService)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("GabAi Backend starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func getOrigins() string {
	origins := os.Getenv("GABAI_CORS_ORIGINS")
	if origins == "" {
		return "http://localhost:5173,http://localhost:3000"
	}
	return origins
}
