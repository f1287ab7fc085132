package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiService submits one structured-output request to the Gemini API.
// Retry policy lives in the analyzer, not here.
type GeminiService interface {
	CheckCredential() error
	GenerateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiService builds the client when an API key is present. With no
// key the service still constructs; the missing credential surfaces only
// when an analysis is attempted.
func NewGeminiService(apiKey, modelName string, temperature float32) (GeminiService, error) {
	svc := &geminiService{
		modelName:   modelName,
		temperature: temperature,
	}
	if apiKey == "" {
		return svc, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	svc.client = client
	return svc, nil
}

// CheckCredential implements GeminiService.
func (g *geminiService) CheckCredential() error {
	if g.client == nil {
		return fmt.Errorf("%w: set GEMINI_API_KEY before analyzing", ErrMissingCredential)
	}
	return nil
}

// GenerateContent implements GeminiService. The generation config is fixed:
// low temperature, JSON output, and the analysis response schema.
func (g *geminiService) GenerateContent(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if err := g.CheckCredential(); err != nil {
		return nil, err
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisResponseSchema(),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate analysis: %w", err)
	}

	return resp, nil
}
