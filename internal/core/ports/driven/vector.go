package driven

import (
	"context"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

// VectorIndex is the external vector database boundary. The index owns its
// internal structure; this system only issues collection, delete, upsert and
// search operations against it.
type VectorIndex interface {
	// EnsureCollection creates the collection with the given vector
	// dimension and cosine distance if it does not already exist.
	EnsureCollection(ctx context.Context, dimensions int) error

	// DeleteByTitle removes every point whose page_title payload equals the
	// given title.
	DeleteByTitle(ctx context.Context, pageTitle string) error

	// Upsert inserts chunks with their embeddings and page_title payload.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the k points most similar to the query embedding.
	Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error)

	// Close releases the connection.
	Close() error
}
