package models

import (
	"time"
)

// Question is stored on the quiz as a document rather than a row so the
// generated content survives persistence verbatim. The answer always equals
// one of the options; that is guaranteed when the quiz is built.
type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type Quiz struct {
	QuizID     string     `json:"quizId" gorm:"primaryKey"`
	SkillID    string     `json:"skillId" gorm:"index;not null"`
	Questions  []Question `json:"questions" gorm:"serializer:json"`
	Difficulty string     `json:"difficulty"`
	CreatedBy  string     `json:"createdBy" gorm:"index;not null"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
