// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

// PageSource fetches titled notes from the external workspace.
// Implementations handle pagination transparently and degrade per page: one
// malformed or unreadable page is skipped, not fatal for the whole listing.
type PageSource interface {
	// ListPages returns every accessible page with its flattened plain-text
	// content.
	ListPages(ctx context.Context) ([]domain.Page, error)

	// ListBlocks returns a page's content blocks. When sinceDays > 0,
	// blocks last edited before the cutoff are excluded; 0 disables the
	// filter.
	ListBlocks(ctx context.Context, pageID string, sinceDays int) ([]domain.Block, error)

	// Validate checks credentials with a lightweight API call.
	Validate(ctx context.Context) error

	// Close releases resources.
	Close() error
}
