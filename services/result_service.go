package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillquiz/apperrors"
	"skillquiz/models"
)

const (
	evaluateTemperature = 0.3
	evaluateMaxTokens   = 1000
)

type ResultService struct {
	db        *gorm.DB
	generator TextGenerator
	quizzes   *QuizService
}

func NewResultService(db *gorm.DB, generator TextGenerator, quizzes *QuizService) *ResultService {
	return &ResultService{db: db, generator: generator, quizzes: quizzes}
}

type EvaluateRequest struct {
	QuizID      string    `json:"quizId"`
	UserAnswers []*string `json:"userAnswers"`
	TimeTaken   int       `json:"timeTaken"`
}

type EvaluateResponse struct {
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	AIFeedback string         `json:"aiFeedback"`
	Result     *models.Result `json:"result"`
}

// answerReview pairs a stored question with the submitted answer at the same
// position; unanswered positions stay null in the evaluation prompt.
type answerReview struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	UserAnswer    *string  `json:"userAnswer"`
	Explanation   string   `json:"explanation"`
}

// EvaluateQuiz scores the submission locally and asks the model for
// qualitative feedback, then persists both as a Result. An upstream failure
// aborts the whole evaluation; nothing is persisted.
func (s *ResultService) EvaluateQuiz(ctx context.Context, userID string, req *EvaluateRequest) (*EvaluateResponse, error) {
	quiz, err := s.quizzes.GetQuizByID(req.QuizID)
	if err != nil {
		return nil, err
	}

	reviews := make([]answerReview, len(quiz.Questions))
	for i, q := range quiz.Questions {
		var userAnswer *string
		if i < len(req.UserAnswers) {
			userAnswer = req.UserAnswers[i]
		}
		reviews[i] = answerReview{
			Prompt:        q.Prompt,
			Options:       q.Options,
			CorrectAnswer: q.Answer,
			UserAnswer:    userAnswer,
			Explanation:   q.Explanation,
		}
	}

	prompt, err := buildEvaluationPrompt(reviews)
	if err != nil {
		return nil, apperrors.Internal("failed to evaluate quiz answers with AI", err)
	}

	feedback, err := s.generator.Generate(ctx, prompt, evaluateTemperature, evaluateMaxTokens)
	if err != nil {
		return nil, apperrors.Internal("failed to evaluate quiz answers with AI", err)
	}

	score := scoreAnswers(quiz.Questions, req.UserAnswers)

	result := models.Result{
		ResultID:  uuid.NewString(),
		UserID:    userID,
		QuizID:    quiz.QuizID,
		Score:     score,
		TimeTaken: req.TimeTaken,
		Date:      time.Now().UTC().Format(time.RFC3339),
		Insights:  models.Insights{AIFeedback: feedback},
	}
	if err := s.db.Create(&result).Error; err != nil {
		return nil, apperrors.Internal("failed to save result", err)
	}

	return &EvaluateResponse{
		Score:      score,
		Total:      len(quiz.Questions),
		AIFeedback: feedback,
		Result:     &result,
	}, nil
}

func (s *ResultService) GetUserResults(userID string) ([]models.Result, error) {
	var results []models.Result
	if err := s.db.Where("user_id = ?", userID).Find(&results).Error; err != nil {
		return nil, apperrors.Internal("failed to get results", err)
	}
	return results, nil
}

func (s *ResultService) GetResultByID(resultID string) (*models.Result, error) {
	var result models.Result
	if err := s.db.Where("result_id = ?", resultID).First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("result not found")
		}
		return nil, apperrors.Internal("failed to get result", err)
	}
	return &result, nil
}

// scoreAnswers counts positions where the submitted answer exactly equals the
// stored correct answer. Case-sensitive, no trimming.
func scoreAnswers(questions []models.Question, answers []*string) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] != nil && *answers[i] == q.Answer {
			score++
		}
	}
	return score
}

func buildEvaluationPrompt(reviews []answerReview) (string, error) {
	input, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`You are an expert quiz evaluator. For the following questions:
- Compare each userAnswer with the correctAnswer.
- Indicate correctness and briefly explain why.
- Summarize strengths, weaknesses, and recommend next steps.

Input:
%s`, input), nil
}
