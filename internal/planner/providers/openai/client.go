// Package openai provides a planner.ModelClient implementation backed by the
// OpenAI Chat Completions API via github.com/openai/openai-go.
//
// Grounded on features/model/openai/client.go's ChatClient/Options/New
// shape, simplified to a single Generate(ctx, prompt) string call and
// ported from that file's sashabaranov/go-openai dependency to
// github.com/openai/openai-go (the SDK this project's domain stack
// standardizes on).
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatClient captures the subset of the openai-go client used here.
type ChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Client implements planner.ModelClient via the OpenAI Chat Completions API.
type Client struct {
	chat  ChatClient
	model string
}

// New builds a Client from a ChatClient and a model identifier.
func New(chat ChatClient, model string) (*Client, error) {
	if chat == nil {
		return nil, errors.New("openai client is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("default model is required")
	}
	return &Client{chat: chat, model: model}, nil
}

// NewFromAPIKey constructs a Client using the default openai-go HTTP
// transport.
func NewFromAPIKey(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("api key is required")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return New(&client.Chat.Completions, model)
}

// Generate issues a single chat completion request with prompt as the sole
// user message and returns the first choice's message content.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chat.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
