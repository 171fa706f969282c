package utils

import (
	"context"
	"courseforge/models"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiCallTimeout = 60 * time.Second

// GeminiService calls the generative model with the course outline schema
// attached, so responses are pre-constrained to the expected JSON shape.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiService builds the Gemini client. A missing API key is reported as
// ErrProviderUnavailable instead of failing later at call time.
func NewGeminiService(ctx context.Context, apiKey, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrProviderUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = CourseOutlineSchema

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

// GenerateCourseOutline asks the model for a fresh course outline and returns
// the raw response text.
func (s *GeminiService) GenerateCourseOutline(ctx context.Context, topic, difficulty string) (string, error) {
	return s.generate(ctx, BuildGeneratePrompt(topic, difficulty))
}

// EditCourseOutline asks the model to revise an existing course and returns
// the raw response text.
func (s *GeminiService) EditCourseOutline(ctx context.Context, course *models.Course, instruction string) (string, error) {
	return s.generate(ctx, BuildEditPrompt(course, instruction))
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, geminiCallTimeout)
	defer cancel()

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("Gemini returned an empty response")
	}
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
