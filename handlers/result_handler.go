package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillquiz/services"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

func (h *ResultHandler) Evaluate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	resp, err := h.resultService.EvaluateQuiz(c.Request.Context(), user.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ResultHandler) GetMyResults(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	results, err := h.resultService.GetUserResults(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
