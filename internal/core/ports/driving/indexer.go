// Package driving provides interfaces for use-case entry points
// (primary/inbound ports).
package driving

import (
	"context"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

// Indexer keeps the external vector index consistent with workspace pages.
type Indexer interface {
	// EnsureReady prepares the index collection for the configured
	// embedding dimension.
	EnsureReady(ctx context.Context) error

	// Sync re-indexes every page whose content fingerprint differs from
	// the cached value. Per-page failures are counted, not fatal; the
	// returned report carries aggregate counts.
	Sync(ctx context.Context, pages []domain.Page) (domain.SyncReport, error)
}
