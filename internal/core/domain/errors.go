package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured indicates required credentials or endpoints are
	// missing. Fatal at startup, never recovered at call time.
	ErrNotConfigured = errors.New("not configured")

	// ErrSourceUnavailable indicates the workspace API could not be
	// reached or refused the request.
	ErrSourceUnavailable = errors.New("content source unavailable")

	// ErrIndexSync indicates a delete or upsert against the vector index
	// failed mid-page. The fingerprint cache must not be updated for that
	// page so the next sync retries it.
	ErrIndexSync = errors.New("index sync failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Indexing and retrieval are disabled.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the language model service is not
	// configured or unreachable. Ask and quiz generation are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not
	// configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")
)
