package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
)

// Ensure ScheduleStore implements the interface.
var _ driven.ScheduleStore = (*ScheduleStore)(nil)

// DefaultScheduleFile is the file name used inside the config directory.
const DefaultScheduleFile = "revision_schedule.json"

// ScheduleStore persists revision records as a JSON list of
// {"page_title": ..., "last_revised": RFC3339} objects. This is the only
// supported shape; a title-keyed map file is rejected on load rather than
// silently mixed in.
type ScheduleStore struct {
	path string
}

// NewScheduleStore creates a store backed by the given file path.
func NewScheduleStore(path string) *ScheduleStore {
	return &ScheduleStore{path: path}
}

// Load reads all revision records. A missing file yields an empty list.
func (s *ScheduleStore) Load() ([]domain.RevisionEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.RevisionEntry{}, nil
		}
		return nil, fmt.Errorf("read revision schedule: %w", err)
	}

	var entries []domain.RevisionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode revision schedule: %w", err)
	}
	return entries, nil
}

// Save overwrites the file with the complete record list.
func (s *ScheduleStore) Save(entries []domain.RevisionEntry) error {
	if entries == nil {
		entries = []domain.RevisionEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode revision schedule: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create schedule directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write revision schedule: %w", err)
	}
	return nil
}
