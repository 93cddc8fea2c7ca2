// Package llm talks to the completion providers and turns their answers into
// strictly validated structures.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/pr-warden/internal/config"
	"github.com/sevigo/pr-warden/internal/core"
)

// Completer sends a single prompt to a completion endpoint that was asked to
// answer with a JSON object, and returns the raw text of the answer.
//
//go:generate mockgen -destination=../../mocks/mock_completer.go -package=mocks . Completer
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() ModelProvider
}

// NewCompleter creates the completer for the configured provider. A missing
// credential is reported as a configuration error before any request is made.
func NewCompleter(ctx context.Context, cfg *config.LLMConfig, logger *slog.Logger) (Completer, error) {
	if cfg.APIKey() == "" {
		return nil, &core.ConfigurationError{Missing: []string{cfg.APIKeyEnv()}}
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		logger.Info("using OpenAI completion provider", "model", cfg.Model, "base_url", cfg.OpenAIBaseURL)
		return NewOpenAICompleter(cfg), nil
	case config.ProviderAnthropic:
		logger.Info("using Anthropic completion provider", "model", cfg.Model)
		return NewAnthropicCompleter(cfg), nil
	case config.ProviderGemini:
		logger.Info("using Gemini completion provider", "model", cfg.Model)
		return NewGeminiCompleter(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
