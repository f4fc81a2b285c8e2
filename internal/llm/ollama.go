package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stagewhisper/platform/internal/resilience"
)

const ollamaTimeout = 60 * time.Second

// Ollama generates answers through a local Ollama server.
type Ollama struct {
	http  *resty.Client
	model string
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

// NewOllama creates a client for the Ollama generate endpoint.
func NewOllama(baseURL, model string) *Ollama {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(ollamaTimeout)
	return &Ollama{http: client, model: model}
}

// Name implements Provider.
func (o *Ollama) Name() string { return "Ollama" }

// Generate implements Provider.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	var result ollamaResponse

	err := resilience.Retry(ctx, resilience.DefaultConfig(), func() error {
		resp, err := o.http.R().
			SetContext(ctx).
			SetBody(ollamaRequest{Model: o.model, Prompt: prompt, Stream: false}).
			SetResult(&result).
			Post("/api/generate")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &resilience.HTTPStatusError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed (is the server running?): %w", err)
	}
	return result.Response, nil
}
