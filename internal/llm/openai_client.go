// ABOUTME: Chat-completion adapter over any OpenAI-compatible endpoint with retry logic
// ABOUTME: Maps provider-neutral messages/tools onto go-openai request and response types
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"redpen/internal/models"
	"redpen/internal/util"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ClientConfig holds configuration for the chat client.
type ClientConfig struct {
	APIKey     string
	BaseURL    string // empty means the official OpenAI endpoint
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	Timeout    time.Duration // per-attempt timeout
}

// DefaultConfig returns the default client configuration.
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:     apiKey,
		Model:      DefaultModel,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Timeout:    60 * time.Second,
	}
}

// Client implements the pipeline's chat-completion port on top of the
// go-openai SDK. It works against any OpenAI-compatible server (local
// llama.cpp, vLLM, OpenRouter) via BaseURL.
type Client struct {
	client     *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
}

// NewClient creates a chat client from the given configuration.
func NewClient(cfg *ClientConfig) (*Client, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("an API key is required for the official OpenAI endpoint")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:     openai.NewClientWithConfig(apiCfg),
		model:      model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		timeout:    timeout,
	}, nil
}

// Chat sends one chat-completion request, retrying transport failures
// with exponential backoff. An empty-but-successful response is returned
// as-is; only transport/protocol problems become errors.
func (c *Client) Chat(ctx context.Context, messages []models.Message, tools []models.Tool) (*models.ChatResponse, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}
	if len(tools) > 0 {
		req.Tools = toOpenAITools(tools)
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateChatCompletion(attemptCtx, req)
		cancel()

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		return fromOpenAIMessage(resp.Choices[0].Message), nil
	}

	return nil, fmt.Errorf("chat completion failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func toOpenAIMessages(messages []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out[i] = msg
	}
	return out
}

func toOpenAITools(tools []models.Tool) []openai.Tool {
	out := make([]openai.Tool, len(tools))
	for i, t := range tools {
		out[i] = openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		}
	}
	return out
}

func fromOpenAIMessage(msg openai.ChatCompletionMessage) *models.ChatResponse {
	resp := &models.ChatResponse{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		resp.ToolCalls = append(resp.ToolCalls, models.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return resp
}
