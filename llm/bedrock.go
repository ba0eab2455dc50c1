package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// DefaultBedrockRegion is used when the provider does not set a region.
const DefaultBedrockRegion = "us-east-1"

// BedrockClient invokes Anthropic models hosted on AWS Bedrock.
type BedrockClient struct {
	base
	client    *bedrockruntime.Client
	maxTokens int
}

// NewBedrockClient creates a Bedrock client from the default AWS credential
// chain. It is a Constructor.
func NewBedrockClient(ctx context.Context, spec Spec) (Client, error) {
	if err := requireModel(KindBedrock, spec); err != nil {
		return nil, err
	}
	region := spec.Region
	if region == "" {
		region = DefaultBedrockRegion
	}

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load AWS config: %v", ErrIntegrationUnavailable, err)
	}

	return &BedrockClient{
		base:      newBase(spec),
		client:    bedrockruntime.NewFromConfig(cfg),
		maxTokens: spec.MaxTokens,
	}, nil
}

// Generate calls InvokeModel with an Anthropic messages payload.
func (c *BedrockClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	requestBody := map[string]interface{}{
		"anthropic_version": "bedrock-2023-05-31",
		"max_tokens":        c.maxTokens,
		"temperature":       c.temperature,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": prompt,
					},
				},
			},
		},
	}
	if system != "" {
		requestBody["system"] = system
	}

	payloadBytes, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payloadBytes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	return parseBedrockResponse(output.Body)
}

func parseBedrockResponse(body []byte) (string, error) {
	var response struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var b strings.Builder
	for _, c := range response.Content {
		if c.Type == "text" {
			b.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
