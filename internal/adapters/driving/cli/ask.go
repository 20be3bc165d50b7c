package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revisehq/revise-cli/internal/logger"
)

var (
	askPage    string
	askStream  bool
	askSession string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question over your indexed notes",
	Long: `Retrieves the chunks most relevant to the question and asks the
configured model, grounded in that context. Use --session to keep
conversation history across invocations of an interactive wrapper, and
--page to mark a specific page as revised on success.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askPage, "page", "", "page title to mark revised after a successful answer")
	askCmd.Flags().BoolVar(&askStream, "stream", false, "print the answer as it is generated")
	askCmd.Flags().StringVar(&askSession, "session", "", "session id for conversation history")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initAI(); err != nil {
		return err
	}
	if err := initPlanner(); err != nil {
		return err
	}
	ctx := context.Background()
	question := args[0]

	if askStream {
		if err := streamAnswer(ctx, cmd, question); err != nil {
			return err
		}
	} else {
		answer, err := queryEngine.Ask(ctx, question, askSession)
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		cmd.Println(answer)
	}

	markRevised(askPage)
	return nil
}

func streamAnswer(ctx context.Context, cmd *cobra.Command, question string) error {
	fragments, errs := queryEngine.AskStream(ctx, question, askSession)
	for fragment := range fragments {
		cmd.Print(fragment)
	}
	cmd.Println()
	if err := <-errs; err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}
	return nil
}

// markRevised updates the revision schedule after a successful interaction.
// Schedule write failures are reported but never fail the command; the
// answer was already delivered.
func markRevised(title string) {
	if title == "" {
		return
	}
	if err := revisionPlanner.MarkRevised(title); err != nil {
		logger.Warn("Failed to mark %q revised: %v", title, err)
	}
}
