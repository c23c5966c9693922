package driven

import "context"

// LLMService produces text completions for grounded answer generation.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI (GPT-4o and friends)
//   - Groq (OpenAI-compatible API)
type LLMService interface {
	// Generate produces a complete text answer for the prompt pair.
	Generate(ctx context.Context, system, user string, opts GenerateOptions) (string, error)

	// GenerateStream produces the answer as a finite sequence of text
	// fragments, calling emit for each one as it arrives. The sequence
	// is not restartable.
	//
	// Cancellation is cooperative: a cancelled ctx or a non-nil error
	// from emit stops fragment production and no further upstream
	// reads are made.
	GenerateStream(ctx context.Context, system, user string, opts GenerateOptions, emit func(fragment string) error) error

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a session.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic-leaning,
	// 1.0 = creative). Grounded answering keeps this low.
	Temperature float64
}
