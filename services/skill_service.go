package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillquiz/apperrors"
	"skillquiz/models"
)

type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

type CreateSkillRequest struct {
	Name            string   `json:"name"`
	DifficultyLevel string   `json:"difficultyLevel"`
	SubSkills       []string `json:"subSkills"`
}

// UpdateSkillRequest is the allowed patch surface for a skill. Only fields
// present in the request body are applied.
type UpdateSkillRequest struct {
	Name            *string   `json:"name"`
	DifficultyLevel *string   `json:"difficultyLevel"`
	SubSkills       *[]string `json:"subSkills"`
}

func (s *SkillService) CreateSkill(userID string, req *CreateSkillRequest) (*models.Skill, error) {
	if req.Name == "" || req.DifficultyLevel == "" {
		return nil, apperrors.Validation("name and difficultyLevel are required")
	}

	subSkills := req.SubSkills
	if subSkills == nil {
		subSkills = []string{}
	}

	skill := models.Skill{
		SkillID:         uuid.NewString(),
		Name:            req.Name,
		DifficultyLevel: req.DifficultyLevel,
		SubSkills:       subSkills,
		CreatedBy:       userID,
	}
	if err := s.db.Create(&skill).Error; err != nil {
		return nil, apperrors.Internal("failed to create skill", err)
	}

	return &skill, nil
}

func (s *SkillService) GetUserSkills(userID string) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.Where("created_by = ?", userID).Find(&skills).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch skills", err)
	}
	return skills, nil
}

func (s *SkillService) GetSkillByID(skillID string) (*models.Skill, error) {
	var skill models.Skill
	if err := s.db.Where("skill_id = ?", skillID).First(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("skill not found")
		}
		return nil, apperrors.Internal("failed to fetch skill", err)
	}
	return &skill, nil
}

func (s *SkillService) UpdateSkill(skillID, userID string, req *UpdateSkillRequest) (*models.Skill, error) {
	skill, err := s.GetSkillByID(skillID)
	if err != nil {
		return nil, err
	}
	if skill.CreatedBy != userID {
		return nil, apperrors.Forbidden("not authorized")
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.DifficultyLevel != nil {
		skill.DifficultyLevel = *req.DifficultyLevel
	}
	if req.SubSkills != nil {
		skill.SubSkills = *req.SubSkills
	}

	if err := s.db.Save(skill).Error; err != nil {
		return nil, apperrors.Internal("failed to update skill", err)
	}
	return skill, nil
}

func (s *SkillService) DeleteSkill(skillID, userID string) error {
	skill, err := s.GetSkillByID(skillID)
	if err != nil {
		return err
	}
	if skill.CreatedBy != userID {
		return apperrors.Forbidden("not authorized")
	}

	if err := s.db.Delete(&models.Skill{}, "skill_id = ?", skillID).Error; err != nil {
		return apperrors.Internal("failed to delete skill", err)
	}
	return nil
}
