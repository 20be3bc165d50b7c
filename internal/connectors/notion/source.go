package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.PageSource = (*Source)(nil)

// Source adapts the Notion client to the PageSource port.
type Source struct {
	client *Client
}

// NewSource creates a page source over the Notion API.
func NewSource(cfg Config) (*Source, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &Source{client: client}, nil
}

// ListPages fetches every accessible page with its flattened content.
// A page that fails to resolve is logged and skipped so one broken page
// never aborts the whole listing; listing the page IDs themselves failing is
// a source-level error.
func (s *Source) ListPages(ctx context.Context) ([]domain.Page, error) {
	ids, err := s.client.SearchPageIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list pages: %w", domain.ErrSourceUnavailable, err)
	}

	pages := make([]domain.Page, 0, len(ids))
	for _, id := range ids {
		page, err := s.fetchPage(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("skipping page %s: %v", id, err)
			continue
		}
		pages = append(pages, page)
	}

	logger.Info("loaded %d of %d pages", len(pages), len(ids))
	return pages, nil
}

func (s *Source) fetchPage(ctx context.Context, id string) (domain.Page, error) {
	title, err := s.client.PageTitle(ctx, id)
	if err != nil {
		return domain.Page{}, fmt.Errorf("resolve title: %w", err)
	}

	blocks, err := s.ListBlocks(ctx, id, 0)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetch blocks: %w", err)
	}

	texts := make([]string, len(blocks))
	for i, b := range blocks {
		texts[i] = b.Text
	}

	return domain.Page{
		ID:      id,
		Title:   title,
		Content: strings.Join(texts, "\n"),
	}, nil
}

// ListBlocks returns a page's content blocks projected to plain text.
// When sinceDays > 0, blocks last edited before the cutoff are excluded.
func (s *Source) ListBlocks(ctx context.Context, pageID string, sinceDays int) ([]domain.Block, error) {
	apiBlocks, err := s.client.BlockChildren(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("%w: list blocks: %w", domain.ErrSourceUnavailable, err)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)

	blocks := make([]domain.Block, 0, len(apiBlocks))
	for _, b := range apiBlocks {
		if sinceDays > 0 && !b.LastEditedTime.IsZero() && b.LastEditedTime.Before(cutoff) {
			continue
		}
		blocks = append(blocks, domain.Block{
			Text:       blockText(b),
			LastEdited: b.LastEditedTime,
		})
	}
	return blocks, nil
}

// Validate checks the integration token with a lightweight API call.
func (s *Source) Validate(ctx context.Context) error {
	if err := s.client.Me(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return nil
}

// Close releases resources. The HTTP client needs no explicit cleanup.
func (s *Source) Close() error {
	return nil
}
