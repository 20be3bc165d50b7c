package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/core/ports/driving"
)

// Ensure RevisionPlanner implements the interface.
var _ driving.RevisionPlanner = (*RevisionPlanner)(nil)

// RevisionPlanner tracks per-page revision recency against a persisted
// schedule and flags overdue pages.
type RevisionPlanner struct {
	store      driven.ScheduleStore
	separators string

	// now is swappable for tests.
	now func() time.Time
}

// NewRevisionPlanner creates a planner over the given schedule store. Empty
// separators select the default topic separator set.
func NewRevisionPlanner(store driven.ScheduleStore, separators string) *RevisionPlanner {
	if separators == "" {
		separators = domain.DefaultTopicSeparators
	}
	return &RevisionPlanner{
		store:      store,
		separators: separators,
		now:        time.Now,
	}
}

// Due returns pages not revised within intervalDays, most overdue first.
// Zero or negative intervals fall back to the default.
func (p *RevisionPlanner) Due(intervalDays int) ([]domain.DueEntry, error) {
	if intervalDays <= 0 {
		intervalDays = domain.DefaultRevisionIntervalDays
	}

	entries, err := p.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	now := p.now()
	var due []domain.DueEntry
	for _, entry := range entries {
		days := int(now.Sub(entry.LastRevised).Hours() / 24)
		if days < intervalDays {
			continue
		}
		due = append(due, domain.DueEntry{
			PageTitle: entry.PageTitle,
			Topic:     domain.TopicOf(entry.PageTitle, p.separators),
			DaysSince: days,
		})
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DaysSince > due[j].DaysSince
	})
	return due, nil
}

// MarkRevised sets the page's last-revised timestamp to now, inserting a
// record if the title was previously unscheduled.
func (p *RevisionPlanner) MarkRevised(title string) error {
	entries, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	now := p.now()
	updated := false
	for i := range entries {
		if entries[i].PageTitle == title {
			entries[i].LastRevised = now
			updated = true
			break
		}
	}
	if !updated {
		entries = append(entries, domain.RevisionEntry{PageTitle: title, LastRevised: now})
	}

	if err := p.store.Save(entries); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}

// EnsureScheduled seeds schedule records for titles not yet tracked. New
// records start with a last-revised timestamp of now, so a freshly seeded
// page becomes due one full interval later. The store is rewritten only
// when something was added.
func (p *RevisionPlanner) EnsureScheduled(titles []string) error {
	entries, err := p.store.Load()
	if err != nil {
		return fmt.Errorf("load schedule: %w", err)
	}

	known := make(map[string]bool, len(entries))
	for _, entry := range entries {
		known[entry.PageTitle] = true
	}

	now := p.now()
	added := false
	for _, title := range titles {
		if known[title] {
			continue
		}
		entries = append(entries, domain.RevisionEntry{PageTitle: title, LastRevised: now})
		known[title] = true
		added = true
	}

	if !added {
		return nil
	}
	if err := p.store.Save(entries); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	return nil
}
