package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List workspace pages",
	Long:  `Lists every page the integration can see, with word counts.`,
	Args:  cobra.NoArgs,
	RunE:  runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}

func runPages(cmd *cobra.Command, _ []string) error {
	if err := initSource(); err != nil {
		return err
	}

	pages, err := pageSource.ListPages(context.Background())
	if err != nil {
		return fmt.Errorf("list pages: %w", err)
	}

	if len(pages) == 0 {
		cmd.Println("No pages found.")
		return nil
	}

	bold := color.New(color.Bold)
	for i, page := range pages {
		cmd.Printf("  [%d] %s (%d words)\n", i+1, bold.Sprint(page.Title), page.WordCount())
	}
	cmd.Printf("\n%d page(s)\n", len(pages))
	return nil
}
