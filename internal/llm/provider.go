// Package llm drafts answers to detected interview questions
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/stagewhisper/platform/internal/config"
)

// ErrNotConfigured means a provider is selected but unusable.
var ErrNotConfigured = errors.New("answer provider not configured")

// Provider is the answer-generation capability: one prompt in, one draft
// answer out. Implementations are selected once at startup.
type Provider interface {
	// Generate blocks for the full backend round trip.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider in logs and error text.
	Name() string
}

// NewProvider builds the configured provider. An unknown provider is a
// startup error; there is no safe default.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.LLMProvider {
	case config.ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	case config.ProviderOpenRouter:
		if cfg.OpenRouterAPIKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY not set", ErrNotConfigured)
		}
		return NewOpenRouter(OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.LLMProvider)
	}
}
