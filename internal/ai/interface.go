package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
type LLMProvider interface {
	// Generate sends one prompt and returns the model's raw text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}
