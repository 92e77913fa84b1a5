package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillquiz/handlers"
	"skillquiz/middleware"
	"skillquiz/services"
)

func SetupRoutes(
	router *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	skillHandler *handlers.SkillHandler,
	quizHandler *handlers.QuizHandler,
	resultHandler *handlers.ResultHandler,
) {
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleLogin)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			users := protected.Group("/users")
			{
				users.GET("/me", userHandler.Me)
				users.PUT("/address", userHandler.UpdateAddress)
				users.POST("/profile-pic", userHandler.UploadProfilePic)
			}

			skills := protected.Group("/skills")
			{
				skills.GET("", skillHandler.GetSkills)
				skills.POST("", skillHandler.CreateSkill)
				skills.PUT("/:id", skillHandler.UpdateSkill)
				skills.DELETE("/:id", skillHandler.DeleteSkill)
			}

			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("", quizHandler.GetUserQuizzes)
				quizzes.POST("/generate", quizHandler.GenerateQuiz)
			}

			results := protected.Group("/results")
			{
				results.GET("/me", resultHandler.GetMyResults)
				results.POST("/evaluate", resultHandler.Evaluate)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
