// Package file provides flat-file implementations of the persistence ports.
// Both stores are read fully, mutated in memory by the caller and written
// back fully: the crash-consistency unit is one whole file rewrite.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/revisehq/revise-cli/internal/core/ports/driven"
)

// Ensure FingerprintStore implements the interface.
var _ driven.FingerprintStore = (*FingerprintStore)(nil)

// DefaultFingerprintFile is the file name used inside the config directory.
const DefaultFingerprintFile = "fingerprints.json"

// FingerprintStore persists the title-to-digest map as a JSON object
// {title: hex_digest}. Stale entries for pages deleted from the workspace
// are tolerated and never pruned automatically.
type FingerprintStore struct {
	path string
}

// NewFingerprintStore creates a store backed by the given file path.
func NewFingerprintStore(path string) *FingerprintStore {
	return &FingerprintStore{path: path}
}

// Load reads the persisted mapping. A missing file yields an empty map.
func (s *FingerprintStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read fingerprint cache: %w", err)
	}

	fingerprints := map[string]string{}
	if err := json.Unmarshal(data, &fingerprints); err != nil {
		return nil, fmt.Errorf("decode fingerprint cache: %w", err)
	}
	return fingerprints, nil
}

// Save overwrites the file with the complete mapping.
func (s *FingerprintStore) Save(fingerprints map[string]string) error {
	data, err := json.MarshalIndent(fingerprints, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fingerprint cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write fingerprint cache: %w", err)
	}
	return nil
}
