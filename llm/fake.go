package llm

import (
	"context"
	"sync"
)

// FakeClient is an in-memory Client for tests and dry runs.
type FakeClient struct {
	base

	mu       sync.Mutex
	Response string
	Err      error
	Prompts  []string
}

// NewFakeClient returns a FakeClient answering with response.
func NewFakeClient(spec Spec, response string) *FakeClient {
	return &FakeClient{base: newBase(spec), Response: response}
}

// FakeConstructor returns a Constructor that builds FakeClients.
func FakeConstructor(response string) Constructor {
	return func(ctx context.Context, spec Spec) (Client, error) {
		return NewFakeClient(spec, response), nil
	}
}

// Generate records the prompt and returns the canned answer.
func (f *FakeClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}
