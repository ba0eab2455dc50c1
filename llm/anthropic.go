package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient talks to the Anthropic messages API.
type AnthropicClient struct {
	base
	client    anthropic.Client
	maxTokens int
}

// NewAnthropicClient creates an Anthropic client. It is a Constructor.
func NewAnthropicClient(ctx context.Context, spec Spec) (Client, error) {
	if err := requireModel(KindAnthropic, spec); err != nil {
		return nil, err
	}
	if spec.APIKey == "" {
		return nil, fmt.Errorf("anthropic: api key is required")
	}
	return &AnthropicClient{
		base:      newBase(spec),
		client:    anthropic.NewClient(option.WithAPIKey(spec.APIKey)),
		maxTokens: spec.MaxTokens,
	}, nil
}

// Generate sends a single user message.
func (c *AnthropicClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
