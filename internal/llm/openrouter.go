package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stagewhisper/platform/internal/resilience"
)

// OpenRouterBaseURL is the production chat-completions endpoint base.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

const openRouterTimeout = 30 * time.Second

const systemPrompt = "You are a helpful interview assistant. Provide concise, accurate answers to interview questions."

// OpenRouter generates answers through a hosted chat-completions API.
type OpenRouter struct {
	http  *resty.Client
	model string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenRouter creates a client with bearer-token auth.
func NewOpenRouter(baseURL, apiKey, model string) *OpenRouter {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(openRouterTimeout).
		SetAuthToken(apiKey)
	return &OpenRouter{http: client, model: model}
}

// Name implements Provider.
func (o *OpenRouter) Name() string { return "OpenRouter" }

// Generate implements Provider.
func (o *OpenRouter) Generate(ctx context.Context, prompt string) (string, error) {
	var result chatResponse

	err := resilience.Retry(ctx, resilience.DefaultConfig(), func() error {
		resp, err := o.http.R().
			SetContext(ctx).
			SetBody(chatRequest{
				Model: o.model,
				Messages: []chatMessage{
					{Role: "system", Content: systemPrompt},
					{Role: "user", Content: prompt},
				},
			}).
			SetResult(&result).
			Post("/chat/completions")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return &resilience.HTTPStatusError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("openrouter request failed: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}
