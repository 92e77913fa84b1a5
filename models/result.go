package models

import (
	"time"
)

type Insights struct {
	AIFeedback string `json:"aiFeedback"`
}

type Result struct {
	ResultID  string    `json:"resultId" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	QuizID    string    `json:"quizId" gorm:"index;not null"`
	Score     int       `json:"score"`
	TimeTaken int       `json:"timeTaken"` // seconds
	Date      string    `json:"date"`      // ISO-8601 evaluation date
	Insights  Insights  `json:"insights" gorm:"serializer:json"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
