package services

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"skillquiz/apperrors"
)

// TextGenerator produces model output for a single-turn prompt. Implemented
// by GeminiService; tests substitute a fake.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error)
}

// GeminiService wraps the Gemini API client used for quiz generation and
// answer evaluation.
type GeminiService struct {
	client *genai.Client
	model  string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiService{client: client, model: model}, nil
}

// Generate sends a single user turn and returns the first candidate's text.
// Transport and API failures come back as KindUnavailable with the provider's
// error payload attached; callers decide how that surfaces.
func (s *GeminiService) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	temp := temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: maxTokens,
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", apperrors.Unavailable("generation request failed", err, upstreamPayload(err))
	}

	return result.Text(), nil
}

// upstreamPayload pulls the provider's error body out for the response, the
// way the original API echoed it back on 503s.
func upstreamPayload(err error) any {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return map[string]any{
			"code":    apiErr.Code,
			"status":  apiErr.Status,
			"message": apiErr.Message,
		}
	}
	return err.Error()
}
