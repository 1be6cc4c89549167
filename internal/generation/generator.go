package generation

import "context"

// Prompt is a single completion request. System steers the model; User
// carries the content to work on.
type Prompt struct {
	// Name identifies the prompt in logs and metrics (e.g. "name", "documentation").
	Name   string
	System string
	User   string
}

// Generator defines the interface for producing text from a prompt.
// This interface serves as a boundary between the application core and
// external AI/LLM services.
type Generator interface {
	// Generate returns the model's text for prompt, or an error wrapping one
	// of the package errors.
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
