package domain

import (
	"strings"
	"time"
)

// Page is a titled note fetched from the workspace.
// It is rebuilt on every fetch and never persisted locally; only its
// fingerprint survives between runs.
type Page struct {
	// ID is assigned by the workspace API.
	ID string

	// Title is the human-facing key. Titles are assumed unique within a
	// sync cycle and are used to scope deletions in the vector index.
	Title string

	// Content is the flattened plain text of all child blocks.
	Content string
}

// WordCount returns the number of whitespace-separated words in the content.
func (p Page) WordCount() int {
	return len(strings.Fields(p.Content))
}

// Block is a single content block of a page.
type Block struct {
	// Text is the flattened plain-text projection of the block.
	Text string

	// LastEdited is when the block was last modified in the workspace.
	// Zero when the API did not report a timestamp.
	LastEdited time.Time
}
