package generativeAI

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no Gemini API key was provided. The
// pipelines treat it like any other generation failure and fail empty.
var ErrNotConfigured = errors.New("generative AI client not configured")

type AIClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewAIClient builds the Gemini client. An empty apiKey yields a client
// whose calls return ErrNotConfigured rather than a startup failure, so
// the service can run in degraded mode without model access.
func NewAIClient(ctx context.Context, apiKey, model string, temperature float32) (*AIClient, error) {
	ai := &AIClient{
		model:       model,
		temperature: temperature,
	}
	if apiKey == "" {
		return ai, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	ai.client = client
	return ai, nil
}

// GenerateContent sends a single prompt and returns the raw response text.
func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if ai.client == nil {
		return "", ErrNotConfigured
	}

	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](ai.temperature)}
	result, err := ai.client.Models.GenerateContent(ctx, ai.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return result.Text(), nil
}
