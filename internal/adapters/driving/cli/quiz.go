package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <page title>",
	Short: "Generate revision questions for a page",
	Long: `Fetches the named page and asks the model for a fixed mix of
revision questions over its content. The page is marked revised on
success.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
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
	title := args[0]

	page, err := findPage(ctx, title)
	if err != nil {
		return err
	}

	quiz, err := queryEngine.GenerateQuiz(ctx, page.Content)
	if err != nil {
		return fmt.Errorf("quiz failed: %w", err)
	}

	cmd.Println(quiz)
	markRevised(page.Title)
	return nil
}

// findPage resolves a page by exact title match.
func findPage(ctx context.Context, title string) (domain.Page, error) {
	pages, err := pageSource.ListPages(ctx)
	if err != nil {
		return domain.Page{}, fmt.Errorf("list pages: %w", err)
	}
	for _, page := range pages {
		if page.Title == title {
			return page, nil
		}
	}
	return domain.Page{}, fmt.Errorf("%w: no page titled %q", domain.ErrNotFound, title)
}
