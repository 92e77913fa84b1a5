package models

import (
	"time"
)

type Skill struct {
	SkillID         string    `json:"skillId" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"not null"`
	DifficultyLevel string    `json:"difficultyLevel" gorm:"not null"`
	SubSkills       []string  `json:"subSkills" gorm:"serializer:json"`
	CreatedBy       string    `json:"createdBy" gorm:"index;not null"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
