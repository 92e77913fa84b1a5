package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillquiz/services"
)

type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (h *SkillHandler) GetSkills(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	skills, err := h.skillService.GetUserSkills(user.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skills)
}

func (h *SkillHandler) CreateSkill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	skill, err := h.skillService.CreateSkill(user.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.UpdateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	skill, err := h.skillService.UpdateSkill(c.Param("id"), user.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, skill)
}

func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.skillService.DeleteSkill(c.Param("id"), user.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Skill deleted"})
}
