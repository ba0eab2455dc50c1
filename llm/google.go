package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GoogleClient talks to the Gemini API.
type GoogleClient struct {
	base
	client    *genai.Client
	maxTokens int
}

// NewGoogleClient creates a Gemini client. It is a Constructor.
func NewGoogleClient(ctx context.Context, spec Spec) (Client, error) {
	if err := requireModel(KindGoogle, spec); err != nil {
		return nil, err
	}
	if spec.APIKey == "" {
		return nil, fmt.Errorf("google: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  spec.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create genai client: %v", ErrIntegrationUnavailable, err)
	}
	return &GoogleClient{
		base:      newBase(spec),
		client:    client,
		maxTokens: spec.MaxTokens,
	}, nil
}

// Generate calls GenerateContent with a single text part.
func (c *GoogleClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(c.temperature)),
		MaxOutputTokens: int32(c.maxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
