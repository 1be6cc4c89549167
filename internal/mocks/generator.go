package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/schemadoc/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, prompt generation.Prompt) (string, error)

	// Responses maps a prompt name to its canned completion.
	Responses map[string]string
	// Errs maps a prompt name to the error returned for it.
	Errs map[string]error

	Log *CallLog

	GenerateCalls struct {
		mu      sync.Mutex
		Count   int
		Prompts []generation.Prompt
	}
}

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Prompts = append(m.GenerateCalls.Prompts, prompt)
	m.GenerateCalls.mu.Unlock()
	m.Log.Record("generate:" + prompt.Name)

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, prompt)
	}
	if err := m.Errs[prompt.Name]; err != nil {
		return "", err
	}
	return m.Responses[prompt.Name], nil
}

// PromptNames returns the names of the prompts received, in order.
func (m *MockGenerator) PromptNames() []string {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	names := make([]string, 0, len(m.GenerateCalls.Prompts))
	for _, p := range m.GenerateCalls.Prompts {
		names = append(names, p.Name)
	}
	return names
}
