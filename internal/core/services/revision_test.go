package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

// revisionMockStore implements driven.ScheduleStore in memory.
type revisionMockStore struct {
	entries   []domain.RevisionEntry
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *revisionMockStore) Load() ([]domain.RevisionEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.entries, nil
}

func (m *revisionMockStore) Save(entries []domain.RevisionEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = entries
	m.saveCalls++
	return nil
}

func newTestPlanner(entries []domain.RevisionEntry, now time.Time) (*RevisionPlanner, *revisionMockStore) {
	store := &revisionMockStore{entries: entries}
	planner := NewRevisionPlanner(store, "")
	planner.now = func() time.Time { return now }
	return planner, store
}

func TestRevisionPlanner_Due(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, _ := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Go: Channels", LastRevised: now.AddDate(0, 0, -5)},
		{PageTitle: "Maths - Calculus", LastRevised: now.AddDate(0, 0, -10)},
		{PageTitle: "Fresh Notes", LastRevised: now.AddDate(0, 0, -1)},
	}, now)

	due, err := planner.Due(3)
	require.NoError(t, err)

	require.Len(t, due, 2)
	// Most overdue first.
	assert.Equal(t, "Maths - Calculus", due[0].PageTitle)
	assert.Equal(t, 10, due[0].DaysSince)
	assert.Equal(t, "Maths", due[0].Topic)
	assert.Equal(t, "Go: Channels", due[1].PageTitle)
	assert.Equal(t, "Go", due[1].Topic)
}

func TestRevisionPlanner_Due_ExactIntervalIsDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, _ := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Boundary", LastRevised: now.AddDate(0, 0, -3)},
	}, now)

	due, err := planner.Due(3)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 3, due[0].DaysSince)
}

func TestRevisionPlanner_Due_InvalidIntervalUsesDefault(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, _ := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Old", LastRevised: now.AddDate(0, 0, -4)},
		{PageTitle: "Recent", LastRevised: now.AddDate(0, 0, -2)},
	}, now)

	due, err := planner.Due(0)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Old", due[0].PageTitle)
}

func TestRevisionPlanner_Due_TopiclessTitleFallsIntoGeneral(t *testing.T) {
	now := time.Now()
	planner, _ := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Untitled", LastRevised: now.AddDate(0, 0, -7)},
	}, now)

	due, err := planner.Due(3)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, domain.GeneralTopic, due[0].Topic)
}

func TestRevisionPlanner_MarkRevised_NewTitle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, store := newTestPlanner(nil, now)

	require.NoError(t, planner.MarkRevised("Go: Channels"))

	require.Len(t, store.entries, 1)
	assert.Equal(t, "Go: Channels", store.entries[0].PageTitle)
	assert.Equal(t, now, store.entries[0].LastRevised)
}

func TestRevisionPlanner_MarkRevised_ExistingTitle(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, store := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Go: Channels", LastRevised: now.AddDate(0, 0, -9)},
	}, now)

	require.NoError(t, planner.MarkRevised("Go: Channels"))

	require.Len(t, store.entries, 1)
	assert.Equal(t, now, store.entries[0].LastRevised)
}

func TestRevisionPlanner_MarkRevisedThenNotDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	planner, _ := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Go: Channels", LastRevised: now.AddDate(0, 0, -30)},
	}, now)

	require.NoError(t, planner.MarkRevised("Go: Channels"))

	due, err := planner.Due(3)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestRevisionPlanner_EnsureScheduled_AddsOnlyMissing(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	existing := now.AddDate(0, 0, -5)
	planner, store := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Known", LastRevised: existing},
	}, now)

	require.NoError(t, planner.EnsureScheduled([]string{"Known", "New Page"}))

	require.Len(t, store.entries, 2)
	assert.Equal(t, existing, store.entries[0].LastRevised, "existing timestamp untouched")
	assert.Equal(t, "New Page", store.entries[1].PageTitle)
	assert.Equal(t, now, store.entries[1].LastRevised)
}

func TestRevisionPlanner_EnsureScheduled_NoChangesSkipsSave(t *testing.T) {
	planner, store := newTestPlanner([]domain.RevisionEntry{
		{PageTitle: "Known", LastRevised: time.Now()},
	}, time.Now())

	require.NoError(t, planner.EnsureScheduled([]string{"Known"}))
	assert.Equal(t, 0, store.saveCalls)
}

func TestRevisionPlanner_StoreErrors(t *testing.T) {
	store := &revisionMockStore{loadErr: errors.New("corrupt file")}
	planner := NewRevisionPlanner(store, "")

	_, err := planner.Due(3)
	assert.Error(t, err)
	assert.Error(t, planner.MarkRevised("x"))
	assert.Error(t, planner.EnsureScheduled([]string{"x"}))
}
