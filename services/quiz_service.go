package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillquiz/apperrors"
	"skillquiz/models"
)

const (
	generateTemperature = 0.7
	generateMaxTokens   = 1000
)

type QuizService struct {
	db        *gorm.DB
	generator TextGenerator
}

func NewQuizService(db *gorm.DB, generator TextGenerator) *QuizService {
	return &QuizService{db: db, generator: generator}
}

type GenerateQuizRequest struct {
	Skill      string `json:"skill"`
	Difficulty string `json:"difficulty"`
}

// GenerateQuiz builds a prompt from the user's skill profile, asks the model
// for questions, and persists the parsed quiz.
func (s *QuizService) GenerateQuiz(ctx context.Context, userID string, req *GenerateQuizRequest) (*models.Quiz, error) {
	if req.Skill == "" || req.Difficulty == "" {
		return nil, apperrors.Validation("missing skill or difficulty")
	}

	var skill models.Skill
	err := s.db.Where("created_by = ? AND name = ?", userID, req.Skill).First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("skill not found for this user")
		}
		return nil, apperrors.Internal("failed to fetch skills", err)
	}

	prompt := buildGenerationPrompt(req.Skill, req.Difficulty, skill.SubSkills)

	raw, err := s.generator.Generate(ctx, prompt, generateTemperature, generateMaxTokens)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Kind == apperrors.KindUnavailable {
			appErr.Message = "AI quiz generation failed. Try again later."
			return nil, appErr
		}
		return nil, apperrors.Internal("AI quiz generation failed", err)
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		QuizID:     uuid.NewString(),
		SkillID:    skill.SkillID,
		Questions:  questions,
		Difficulty: req.Difficulty,
		CreatedBy:  userID,
	}
	if err := s.db.Create(&quiz).Error; err != nil {
		return nil, apperrors.Internal("failed to save quiz", err)
	}

	return &quiz, nil
}

func (s *QuizService) GetUserQuizzes(userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.db.Where("created_by = ?", userID).Find(&quizzes).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch quizzes", err)
	}
	return quizzes, nil
}

func (s *QuizService) GetQuizByID(quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.Where("quiz_id = ?", quizID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("quiz not found")
		}
		return nil, apperrors.Internal("failed to fetch quiz", err)
	}
	return &quiz, nil
}

func buildGenerationPrompt(skill, difficulty string, subSkills []string) string {
	subSkillText := "no specific subskills"
	if len(subSkills) > 0 {
		subSkillText = strings.Join(subSkills, ", ")
	}

	return fmt.Sprintf(`Generate 5 %s level multiple choice questions on the topic: "%s".
Include subskills: %s.

Format the output strictly as a JSON array of objects with fields:
- prompt: string
- options: array of strings
- answer: string (must match one option)
- explanation: string
`, difficulty, skill, subSkillText)
}

var (
	fenceOpen  = regexp.MustCompile("(?i)^\\s*```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```\\s*$")
)

// stripCodeFence removes surrounding markdown code-fence markup the model
// sometimes wraps its JSON in.
func stripCodeFence(s string) string {
	s = fenceOpen.ReplaceAllString(s, "")
	s = fenceClose.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func parseQuestions(raw string) ([]models.Question, error) {
	cleaned := stripCodeFence(raw)

	var questions []models.Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, apperrors.UpstreamFormat("AI response not in expected JSON format", err)
	}
	if len(questions) == 0 {
		return nil, apperrors.UpstreamFormat("AI response not in expected JSON format", errors.New("parsed result is not a valid question array"))
	}

	return questions, nil
}
