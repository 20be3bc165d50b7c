package driven

import "github.com/revisehq/revise-cli/internal/core/domain"

// FingerprintStore persists the title-to-digest mapping between runs.
// The backing store is a single flat file read and rewritten whole; it is
// owned exclusively by this process.
type FingerprintStore interface {
	// Load returns the persisted mapping. A missing backing store yields an
	// empty map, never an error.
	Load() (map[string]string, error)

	// Save overwrites the persisted store with the complete mapping.
	Save(fingerprints map[string]string) error
}

// ScheduleStore persists revision records between runs. Same single-file,
// full-rewrite semantics as FingerprintStore. A missing file means nothing
// has been revised yet.
type ScheduleStore interface {
	// Load returns all revision records. A missing backing store yields an
	// empty list, never an error.
	Load() ([]domain.RevisionEntry, error)

	// Save overwrites the persisted store with the complete record list.
	Save(entries []domain.RevisionEntry) error
}
