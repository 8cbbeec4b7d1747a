// Package bedrock provides a planner.ModelClient implementation backed by
// the AWS Bedrock Converse API.
//
// Grounded on features/model/bedrock/client.go's RuntimeClient/Options/
// encodeMessages/translateResponse shape, simplified from its full
// multi-turn/tool-use/thinking pipeline down to a single
// Generate(ctx, prompt) string call against a plain user message.
package bedrock

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// RuntimeClient mirrors the subset of the AWS Bedrock runtime client used
// here. It is satisfied by *bedrockruntime.Client.
type RuntimeClient interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Client implements planner.ModelClient on top of AWS Bedrock Converse.
type Client struct {
	runtime RuntimeClient
	model   string
}

// New builds a Client from a Bedrock runtime client and a model identifier.
func New(runtime RuntimeClient, model string) (*Client, error) {
	if runtime == nil {
		return nil, errors.New("bedrock runtime client is required")
	}
	if model == "" {
		return nil, errors.New("model identifier is required")
	}
	return &Client{runtime: runtime, model: model}, nil
}

// Generate issues a single Converse call with prompt as the sole user
// message and returns the concatenated text of the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	input := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		Messages: []brtypes.Message{
			{
				Role:    brtypes.ConversationRoleUser,
				Content: []brtypes.ContentBlock{&brtypes.ContentBlockMemberText{Value: prompt}},
			},
		},
	}
	out, err := c.runtime.Converse(ctx, input)
	if err != nil {
		return "", fmt.Errorf("bedrock converse: %w", err)
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("bedrock converse: no message in output")
	}
	var text string
	for _, block := range msg.Value.Content {
		if tb, ok := block.(*brtypes.ContentBlockMemberText); ok {
			text += tb.Value
		}
	}
	return text, nil
}
