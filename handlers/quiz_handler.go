package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillquiz/services"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), user.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) GetUserQuizzes(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.GetUserQuizzes(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}
