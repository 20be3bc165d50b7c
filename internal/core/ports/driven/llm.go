package driven

import "context"

// LLMService provides language model completions for answering and quiz
// generation. Adapters normalise provider response shapes to plain text at
// this boundary; callers never branch on response structure.
type LLMService interface {
	// Generate produces a completion for a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation and returns the full answer.
	Chat(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (string, error)

	// ChatStream conducts a conversation and emits the answer as a finite,
	// non-restartable sequence of text fragments in generation order. The
	// fragments channel is closed when generation ends; at most one error
	// is sent on the error channel. The consumer cancels by cancelling ctx
	// and draining no further.
	ChatStream(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (<-chan string, <-chan error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
