package main

import (
	"context"
	"log"

	"skillquiz/config"
	"skillquiz/handlers"
	"skillquiz/middleware"
	"skillquiz/models"
	"skillquiz/routes"
	"skillquiz/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Quiz{},
		&models.Result{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()

	// Initialize external clients
	s3Client, err := config.InitS3(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize S3 client:", err)
	}

	gemini, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret, cfg.GoogleClientID)
	userService := services.NewUserService(db, s3Client, cfg.S3Bucket, cfg.AWSRegion)
	skillService := services.NewSkillService(db)
	quizService := services.NewQuizService(db, gemini)
	resultService := services.NewResultService(db, gemini, quizService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	skillHandler := handlers.NewSkillHandler(skillService)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authService, authHandler, userHandler, skillHandler, quizHandler, resultHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
