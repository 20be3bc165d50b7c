package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a deterministic hex digest of page content.
// Two fetches of the same title with equal digests are treated as unchanged
// and skipped during indexing. The digest is for equality checking only, not
// security.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
