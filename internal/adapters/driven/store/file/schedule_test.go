package file

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

func TestScheduleStore_LoadMissingFile(t *testing.T) {
	store := NewScheduleStore(filepath.Join(t.TempDir(), "nope.json"))

	entries, err := store.Load()

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestScheduleStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revision_schedule.json")
	store := NewScheduleStore(path)

	revised := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	want := []domain.RevisionEntry{
		{PageTitle: "Algebra: Basics", LastRevised: revised},
		{PageTitle: "Go - Channels", LastRevised: revised.Add(24 * time.Hour)},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Algebra: Basics", got[0].PageTitle)
	assert.True(t, got[0].LastRevised.Equal(revised))
}

func TestScheduleStore_SaveNilSlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revision_schedule.json")
	store := NewScheduleStore(path)

	require.NoError(t, store.Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data), "nil persists as an empty list, not null")
}

func TestScheduleStore_RejectsMapShapedFile(t *testing.T) {
	// The title-keyed map shape {"title": "2026-08-28"} is deliberately
	// unsupported; the list-of-records shape is canonical.
	path := filepath.Join(t.TempDir(), "revision_schedule.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Algebra": "2026-08-28"}`), 0o600))

	_, err := NewScheduleStore(path).Load()

	assert.Error(t, err)
}
