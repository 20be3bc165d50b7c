package driving

import "github.com/revisehq/revise-cli/internal/core/domain"

// RevisionPlanner tracks how recently each page was revised and flags the
// ones that are overdue.
type RevisionPlanner interface {
	// Due returns pages not revised within intervalDays, most overdue
	// first. A page absent from the schedule is not reported; it becomes
	// tracked on first interaction.
	Due(intervalDays int) ([]domain.DueEntry, error)

	// MarkRevised sets the page's last-revised timestamp to now, inserting
	// a record if the title was previously unscheduled.
	MarkRevised(title string) error

	// EnsureScheduled seeds schedule records for titles not yet tracked.
	EnsureScheduled(titles []string) error
}
