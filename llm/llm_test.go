package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_New(t *testing.T) {
	r := NewRegistry()
	var gotSpec Spec
	r.Register("fake", func(ctx context.Context, spec Spec) (Client, error) {
		gotSpec = spec
		return NewFakeClient(spec, "ok"), nil
	})

	client, err := r.New(context.Background(), "fake", Spec{Provider: "p", Model: "m", Temperature: 0.2})
	require.NoError(t, err)
	assert.Equal(t, "p", client.Provider())
	assert.Equal(t, "m", client.Model())
	assert.Equal(t, 0.2, client.Temperature())
	assert.Equal(t, DefaultMaxTokens, gotSpec.MaxTokens)
}

func TestRegistry_UnknownKind(t *testing.T) {
	r := NewRegistry()

	client, err := r.New(context.Background(), "missing", Spec{Model: "m"})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrIntegrationUnavailable)
	assert.ErrorContains(t, err, "(available: none)")

	client, err = DefaultRegistry().New(context.Background(), "azure", Spec{Model: "m"})
	assert.Nil(t, client)
	assert.ErrorContains(t, err, "(available: anthropic, bedrock, google, openai)")
}

func TestRegistry_ConstructorError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry()
	r.Register("broken", func(ctx context.Context, spec Spec) (Client, error) {
		return nil, boom
	})

	_, err := r.New(context.Background(), "broken", Spec{})
	assert.ErrorIs(t, err, boom)
}

func TestDefaultRegistry_Kinds(t *testing.T) {
	assert.Equal(t, []Kind{KindAnthropic, KindBedrock, KindGoogle, KindOpenAI}, DefaultRegistry().Kinds())
}

func TestConstructors_Validation(t *testing.T) {
	tests := []struct {
		name string
		ctor Constructor
		spec Spec
	}{
		{name: "openai without model", ctor: NewOpenAIClient, spec: Spec{APIKey: "k"}},
		{name: "openai without key", ctor: NewOpenAIClient, spec: Spec{Model: "gpt-4o"}},
		{name: "anthropic without key", ctor: NewAnthropicClient, spec: Spec{Model: "claude"}},
		{name: "google without key", ctor: NewGoogleClient, spec: Spec{Model: "gemini"}},
		{name: "bedrock without model", ctor: NewBedrockClient, spec: Spec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := tt.ctor(context.Background(), tt.spec)
			assert.Error(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestNewOpenAIClient(t *testing.T) {
	client, err := NewOpenAIClient(context.Background(), Spec{
		Provider:    "openai",
		Model:       "gpt-4o",
		Temperature: 0.7,
		APIKey:      "sk-test",
		MaxTokens:   100,
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", client.Provider())
	assert.Equal(t, "gpt-4o", client.Model())
	assert.Equal(t, 0.7, client.Temperature())
}

func TestNewAnthropicClient(t *testing.T) {
	client, err := NewAnthropicClient(context.Background(), Spec{
		Provider: "anthropic",
		Model:    "claude-3-5-sonnet-latest",
		APIKey:   "sk-ant-test",
	})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", client.Provider())
	assert.Equal(t, "claude-3-5-sonnet-latest", client.Model())
}

func TestParseBedrockResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "joins text blocks",
			body: `{"content":[{"type":"text","text":"hello "},{"type":"tool_use"},{"type":"text","text":"world"}],"stop_reason":"end_turn"}`,
			want: "hello world",
		},
		{
			name:    "no content",
			body:    `{"content":[]}`,
			wantErr: ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseBedrockResponse([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseBedrockResponse([]byte("not json"))
	assert.Error(t, err)
}

func TestFakeClient(t *testing.T) {
	client := NewFakeClient(Spec{Provider: "fake"}, "plan")

	out, err := client.Generate(context.Background(), "sys", "do it")
	require.NoError(t, err)
	assert.Equal(t, "plan", out)
	assert.Equal(t, []string{"do it"}, client.Prompts)

	client.Err = errors.New("down")
	_, err = client.Generate(context.Background(), "", "again")
	assert.EqualError(t, err, "down")
}
