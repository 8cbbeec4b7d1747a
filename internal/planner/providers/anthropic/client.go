// Package anthropic provides a planner.ModelClient implementation backed by
// the Anthropic Claude Messages API.
//
// Grounded on features/model/anthropic/client.go, simplified from its full
// Request/Response/streaming/tool-use translation down to a single
// Generate(ctx, prompt) string call: the Model Planner (spec §4.4.2) only
// needs a one-shot completion whose text it parses as JSON, not the richer
// multi-turn/tool-use contract the teacher's model package supports.
package anthropic

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// MessagesClient captures the subset of the Anthropic SDK used here. It is
// satisfied by *sdk.MessageService so callers can substitute a mock in
// tests without depending on the real HTTP transport.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Client implements planner.ModelClient on top of Anthropic Claude Messages.
type Client struct {
	msg       MessagesClient
	model     string
	maxTokens int
}

// New builds a Client from an Anthropic Messages client, a model identifier,
// and a max-tokens cap.
func New(msg MessagesClient, model string, maxTokens int) (*Client, error) {
	if msg == nil {
		return nil, errors.New("anthropic client is required")
	}
	if model == "" {
		return nil, errors.New("model identifier is required")
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &Client{msg: msg, model: model, maxTokens: maxTokens}, nil
}

// NewFromAPIKey constructs a Client using the default Anthropic HTTP
// transport, reading credentials from apiKey directly rather than the
// environment so configuration stays in one place (spec §6.2:
// model_api_key).
func NewFromAPIKey(apiKey, model string, maxTokens int) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	ac := sdk.NewClient(option.WithAPIKey(apiKey))
	return New(&ac.Messages, model, maxTokens)
}

// Generate issues a single non-streaming Messages.New request with prompt as
// the sole user message and returns the concatenated text of the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	params := sdk.MessageNewParams{
		MaxTokens: int64(c.maxTokens),
		Model:     sdk.Model(c.model),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	}
	msg, err := c.msg.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic messages.new: %w", err)
	}
	var out string
	for _, block := range msg.Content {
		if text := block.Text; text != "" {
			out += text
		}
	}
	return out, nil
}
