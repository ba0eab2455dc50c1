package provider

import (
	"testing"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRegistry_UnmarshalYAML_PreservesOrder(t *testing.T) {
	doc := `
google:
  enabled: true
  api_key_env: GOOGLE_API_KEY
  model: gemini-2.0-flash
openai:
  enabled: false
  api_key_env: OPENAI_API_KEY
  model: gpt-4o
  temperature: 0.2
claude-bedrock:
  kind: bedrock
  enabled: true
  api_key_env: AWS_ACCESS_KEY_ID
  model: anthropic.claude-3-5-sonnet
  region: ap-northeast-1
`
	var reg Registry
	require.NoError(t, yaml.Unmarshal([]byte(doc), &reg))

	assert.Equal(t, []string{"google", "openai", "claude-bedrock"}, reg.Names())

	g, ok := reg.Get("google")
	require.True(t, ok)
	assert.Equal(t, llm.KindGoogle, g.Kind)
	assert.Equal(t, DefaultTemperature, g.Temperature)
	assert.True(t, g.Enabled)

	o, _ := reg.Get("openai")
	assert.Equal(t, 0.2, o.Temperature)
	assert.False(t, o.Enabled)

	b, _ := reg.Get("claude-bedrock")
	assert.Equal(t, llm.KindBedrock, b.Kind)
	assert.Equal(t, "ap-northeast-1", b.Region)
}

func TestRegistry_UnmarshalYAML_Errors(t *testing.T) {
	var reg Registry
	assert.Error(t, yaml.Unmarshal([]byte(`- openai`), &reg))
	assert.Error(t, yaml.Unmarshal([]byte("openai:\n  enabled: [1]\n"), &reg))
}

func TestNewRegistry_Duplicate(t *testing.T) {
	_, err := NewRegistry("a", Descriptor{Name: "a"}, Descriptor{Name: "a"})
	assert.ErrorIs(t, err, ErrDuplicateProvider)
}

func TestRegistry_DefaultProvider(t *testing.T) {
	var nilReg *Registry
	assert.Equal(t, DefaultName, nilReg.DefaultProvider())
	assert.Equal(t, DefaultName, (&Registry{}).DefaultProvider())
	assert.Equal(t, "google", (&Registry{Default: "google"}).DefaultProvider())
}

func TestCandidateOrder(t *testing.T) {
	tests := []struct {
		name  string
		def   string
		names []string
		want  []string
	}{
		{
			name:  "default moved to front without duplication",
			def:   "anthropic",
			names: []string{"openai", "anthropic", "google"},
			want:  []string{"anthropic", "openai", "google"},
		},
		{
			name:  "default already first",
			def:   "openai",
			names: []string{"openai", "anthropic"},
			want:  []string{"openai", "anthropic"},
		},
		{
			name:  "unregistered default is ignored",
			def:   "mistral",
			names: []string{"openai", "anthropic"},
			want:  []string{"openai", "anthropic"},
		},
		{
			name:  "empty registry",
			def:   "openai",
			names: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := make([]Descriptor, len(tt.names))
			for i, n := range tt.names {
				ds[i] = Descriptor{Name: n}
			}
			reg, err := NewRegistry(tt.def, ds...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, CandidateOrder(reg))
		})
	}
}

func TestExpectedCredentials(t *testing.T) {
	reg, err := NewRegistry("anthropic",
		Descriptor{Name: "openai", CredentialEnv: "OPENAI_API_KEY"},
		Descriptor{Name: "anthropic", CredentialEnv: "ANTHROPIC_API_KEY"},
		Descriptor{Name: "google", CredentialEnv: "GOOGLE_API_KEY"},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY"}, ExpectedCredentials(reg))
}
