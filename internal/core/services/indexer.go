package services

import (
	"context"
	"fmt"

	"github.com/revisehq/revise-cli/internal/chunker"
	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/core/ports/driving"
	"github.com/revisehq/revise-cli/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Indexer = (*Indexer)(nil)

// Indexer keeps the vector index consistent with workspace pages. Pages
// whose content fingerprint matches the cached value are skipped entirely;
// changed pages are re-chunked, re-embedded and replaced in the index.
type Indexer struct {
	index        driven.VectorIndex
	embedder     driven.EmbeddingService
	fingerprints driven.FingerprintStore
	splitter     *chunker.Splitter
}

// NewIndexer creates an indexer. A nil splitter selects the default
// retrieval chunking configuration.
func NewIndexer(
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	fingerprints driven.FingerprintStore,
	splitter *chunker.Splitter,
) *Indexer {
	if splitter == nil {
		splitter, _ = chunker.New(chunker.DefaultChunkSize, chunker.DefaultChunkOverlap)
	}
	return &Indexer{
		index:        index,
		embedder:     embedder,
		fingerprints: fingerprints,
		splitter:     splitter,
	}
}

// EnsureReady prepares the index collection for the configured embedding
// dimension.
func (x *Indexer) EnsureReady(ctx context.Context) error {
	if err := x.index.EnsureCollection(ctx, x.embedder.Dimensions()); err != nil {
		return fmt.Errorf("%w: ensure collection: %w", domain.ErrIndexSync, err)
	}
	return nil
}

// Sync re-indexes every page whose content fingerprint differs from the
// cached value. Per-page failures are counted and logged, not fatal. The
// fingerprint for a page is updated only after its chunks are safely in the
// index, so a failed page is retried on the next run.
func (x *Indexer) Sync(ctx context.Context, pages []domain.Page) (domain.SyncReport, error) {
	var report domain.SyncReport

	cache, err := x.fingerprints.Load()
	if err != nil {
		return report, fmt.Errorf("%w: load fingerprints: %w", domain.ErrIndexSync, err)
	}

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fp := domain.Fingerprint(page.Content)
		if cached, ok := cache[page.Title]; ok && cached == fp {
			logger.Debug("Unchanged: %s", page.Title)
			report.Unchanged++
			continue
		}

		if err := x.reindexPage(ctx, page); err != nil {
			logger.Warn("Failed to index %q: %v", page.Title, err)
			report.Failed++
			continue
		}

		cache[page.Title] = fp
		report.Updated++
		logger.Info("Indexed: %s", page.Title)
	}

	if err := x.fingerprints.Save(cache); err != nil {
		return report, fmt.Errorf("%w: save fingerprints: %w", domain.ErrIndexSync, err)
	}
	return report, nil
}

// reindexPage replaces a page's chunks in the index with freshly embedded
// ones. Old chunks are removed first so a retitled section cannot leave
// stale points behind.
func (x *Indexer) reindexPage(ctx context.Context, page domain.Page) error {
	if err := x.index.DeleteByTitle(ctx, page.Title); err != nil {
		return fmt.Errorf("delete stale chunks: %w", err)
	}

	chunks := x.splitter.Chunks(page)
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}

	embeddings, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: got %d for %d chunks", len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := x.index.Upsert(ctx, chunks); err != nil {
		return fmt.Errorf("upsert chunks: %w", err)
	}
	return nil
}
