package domain

// EmbeddingProvider identifies an embedding service backend.
type EmbeddingProvider string

// Available embedding providers.
const (
	// EmbeddingHuggingFace is the hosted Hugging Face Inference API.
	EmbeddingHuggingFace EmbeddingProvider = "huggingface"

	// EmbeddingOllama is a local Ollama instance.
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// IsValid returns true if the embedding provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingHuggingFace, EmbeddingOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p EmbeddingProvider) RequiresAPIKey() bool {
	return p == EmbeddingHuggingFace
}

// LLMProvider identifies a language model service backend.
type LLMProvider string

// Available LLM providers.
const (
	// LLMGroq is the hosted Groq OpenAI-compatible API.
	LLMGroq LLMProvider = "groq"

	// LLMOllama is a local Ollama instance.
	LLMOllama LLMProvider = "ollama"
)

// IsValid returns true if the LLM provider is recognised.
func (p LLMProvider) IsValid() bool {
	switch p {
	case LLMGroq, LLMOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p LLMProvider) RequiresAPIKey() bool {
	return p == LLMGroq
}

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// APIKey authenticates hosted providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// Dimensions is the vector size produced by the model. It must match
	// the vector index collection.
	Dimensions int
}

// IsConfigured returns true when the settings name a usable provider.
func (s *EmbeddingSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings configures the language model service.
type LLMSettings struct {
	Provider LLMProvider

	// Model is the chat model name.
	Model string

	// APIKey authenticates hosted providers.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string
}

// IsConfigured returns true when the settings name a usable provider.
func (s *LLMSettings) IsConfigured() bool {
	if s == nil || !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}
