package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/sevigo/pr-warden/internal/config"
)

type geminiCompleter struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiCompleter creates a Gemini API client that requests JSON output.
func NewGeminiCompleter(ctx context.Context, cfg *config.LLMConfig) (Completer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	temperature := float32(cfg.Temperature)
	return &geminiCompleter{
		client: client,
		model:  cfg.Model,
		config: &genai.GenerateContentConfig{
			Temperature:      &temperature,
			MaxOutputTokens:  int32(cfg.MaxTokens), //nolint:gosec // bounded by configuration
			ResponseMIMEType: "application/json",
		},
	}, nil
}

func (c *geminiCompleter) Provider() ModelProvider { return GeminiProvider }

func (c *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from gemini")
	}
	return text, nil
}
