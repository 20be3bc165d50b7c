package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

var dueIntervalDays int

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show pages that are due for revision",
	Long: `Lists pages not revised within the interval, grouped by topic and
most overdue first.`,
	Args: cobra.NoArgs,
	RunE: runDue,
}

func init() {
	dueCmd.Flags().IntVar(&dueIntervalDays, "interval", domain.DefaultRevisionIntervalDays,
		"days a page may go unrevised before it is due")
	rootCmd.AddCommand(dueCmd)
}

func runDue(cmd *cobra.Command, _ []string) error {
	if err := initPlanner(); err != nil {
		return err
	}

	due, err := revisionPlanner.Due(dueIntervalDays)
	if err != nil {
		return err
	}

	if len(due) == 0 {
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "All pages are up to date with revisions.")
		return nil
	}

	// Entries arrive most overdue first; preserve that order inside each
	// topic and order topics by their most overdue page.
	grouped := make(map[string][]domain.DueEntry)
	var topics []string
	for _, entry := range due {
		if _, seen := grouped[entry.Topic]; !seen {
			topics = append(topics, entry.Topic)
		}
		grouped[entry.Topic] = append(grouped[entry.Topic], entry)
	}

	yellow := color.New(color.FgYellow, color.Bold)
	cmd.Println("Revision reminders:")
	for _, topic := range topics {
		yellow.Fprintf(cmd.OutOrStdout(), "\n%s\n", topic)
		for _, entry := range grouped[topic] {
			cmd.Printf("  - %s: last revised %d day(s) ago\n", entry.PageTitle, entry.DaysSince)
		}
	}
	return nil
}
