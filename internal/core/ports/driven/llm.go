package driven

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

// LLMService produces chat completions for conversational and grounded
// answering.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - Anthropic (Claude)
//   - Ollama (local models)
type LLMService interface {
	// Complete sends an ordered message sequence to the model and
	// returns the assistant reply text. Failures wrap domain.ErrLLMService.
	Complete(ctx context.Context, messages []domain.Turn, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures completion behaviour.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
