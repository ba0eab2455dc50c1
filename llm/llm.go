// Package llm builds chat clients for the supported backends. Backends are
// registered by kind tag in a Registry so provider selection never branches
// on provider names.
package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrIntegrationUnavailable is returned when no constructor is registered
	// for a kind, or the backend cannot be initialised in this environment.
	ErrIntegrationUnavailable = errors.New("llm integration unavailable")
	// ErrEmptyResponse is returned when a backend answers without text.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Kind identifies a backend implementation.
type Kind string

const (
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindGoogle    Kind = "google"
	KindBedrock   Kind = "bedrock"
)

// DefaultMaxTokens caps completions for backends that require a limit.
const DefaultMaxTokens = 4096

// Spec carries everything a constructor needs.
type Spec struct {
	Provider    string
	Model       string
	Temperature float64
	APIKey      string
	// CredentialEnv names the variable APIKey was read from.
	CredentialEnv string
	Region        string
	MaxTokens     int
}

// Client is a live handle to one backend.
type Client interface {
	// Provider returns the provider name the client was built for.
	Provider() string
	// Model returns the model identifier.
	Model() string
	// Temperature returns the sampling temperature.
	Temperature() float64
	// CredentialEnv returns the variable holding the client's credential.
	CredentialEnv() string
	// Generate sends a single-turn request and returns the text answer.
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Constructor builds a Client from a Spec.
type Constructor func(ctx context.Context, spec Spec) (Client, error)

// Registry maps kind tags to constructors.
type Registry struct {
	mu           sync.RWMutex
	constructors map[Kind]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[Kind]Constructor)}
}

// DefaultRegistry returns a registry with every built-in backend.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindOpenAI, NewOpenAIClient)
	r.Register(KindAnthropic, NewAnthropicClient)
	r.Register(KindGoogle, NewGoogleClient)
	r.Register(KindBedrock, NewBedrockClient)
	return r
}

// Register adds or replaces the constructor for kind.
func (r *Registry) Register(kind Kind, c Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[kind] = c
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]Kind, 0, len(r.constructors))
	for k := range r.constructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// New builds a client for kind. Unregistered kinds yield an error wrapping
// ErrIntegrationUnavailable.
func (r *Registry) New(ctx context.Context, kind Kind, spec Spec) (Client, error) {
	r.mu.RLock()
	c, ok := r.constructors[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no backend registered for kind %q (available: %s)", ErrIntegrationUnavailable, kind, joinKinds(r.Kinds()))
	}
	if spec.MaxTokens <= 0 {
		spec.MaxTokens = DefaultMaxTokens
	}
	client, err := c(ctx, spec)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func joinKinds(kinds []Kind) string {
	if len(kinds) == 0 {
		return "none"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// base holds the fields every backend reports.
type base struct {
	provider      string
	model         string
	temperature   float64
	credentialEnv string
}

func newBase(spec Spec) base {
	return base{
		provider:      spec.Provider,
		model:         spec.Model,
		temperature:   spec.Temperature,
		credentialEnv: spec.CredentialEnv,
	}
}

func (b base) Provider() string      { return b.provider }
func (b base) Model() string         { return b.model }
func (b base) Temperature() float64  { return b.temperature }
func (b base) CredentialEnv() string { return b.credentialEnv }

func requireModel(kind Kind, spec Spec) error {
	if spec.Model == "" {
		return fmt.Errorf("%s: model identifier is required", kind)
	}
	return nil
}
