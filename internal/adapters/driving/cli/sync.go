package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/logger"
)

var syncSinceDays int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise the vector index with workspace pages",
	Long: `Fetches all workspace pages and re-indexes the ones whose content
changed since the last sync. Unchanged pages are skipped via the local
fingerprint cache. New page titles are added to the revision schedule.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncSinceDays, "since", 0, "only index blocks edited in the last N days (0 = everything)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if err := initSource(); err != nil {
		return err
	}
	if err := initAI(); err != nil {
		return err
	}
	if err := initPlanner(); err != nil {
		return err
	}
	ctx := context.Background()

	cmd.Println("Fetching pages...")
	pages, err := pageSource.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	if syncSinceDays > 0 {
		pages = filterRecent(ctx, pages, syncSinceDays)
	}

	if err := indexer.EnsureReady(ctx); err != nil {
		return err
	}

	report, err := indexer.Sync(ctx, pages)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	titles := make([]string, len(pages))
	for i, page := range pages {
		titles[i] = page.Title
	}
	if err := revisionPlanner.EnsureScheduled(titles); err != nil {
		return fmt.Errorf("seed revision schedule: %w", err)
	}

	green := color.New(color.FgGreen)
	cmd.Printf("Sync complete: %s updated, %d unchanged, %d failed (%d total)\n",
		green.Sprintf("%d", report.Updated), report.Unchanged, report.Failed, report.Total())
	if report.Failed > 0 {
		cmd.Println("Failed pages stay dirty and are retried on the next sync.")
	}
	return nil
}

// filterRecent rebuilds each page's content from blocks edited within the
// cutoff. Pages with no recent blocks are dropped from the batch entirely so
// their fingerprints (and index entries) are left alone.
func filterRecent(ctx context.Context, pages []domain.Page, sinceDays int) []domain.Page {
	var recent []domain.Page
	for _, page := range pages {
		blocks, err := pageSource.ListBlocks(ctx, page.ID, sinceDays)
		if err != nil {
			logger.Warn("Skipping %q: %v", page.Title, err)
			continue
		}
		if len(blocks) == 0 {
			continue
		}

		texts := make([]string, len(blocks))
		for i, block := range blocks {
			texts[i] = block.Text
		}
		page.Content = strings.Join(texts, "\n")
		recent = append(recent, page)
	}
	return recent
}
