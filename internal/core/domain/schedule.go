package domain

import (
	"strings"
	"time"
)

// DefaultRevisionIntervalDays is how long a page may go unrevised before it
// is flagged as due.
const DefaultRevisionIntervalDays = 3

// DefaultTopicSeparators are the characters a title is split on to derive
// its topic bucket.
const DefaultTopicSeparators = ":-"

// GeneralTopic is the bucket for titles without a recognised separator.
const GeneralTopic = "general"

// RevisionEntry records when a page was last revised.
// The schedule file is a JSON list of these records.
type RevisionEntry struct {
	PageTitle   string    `json:"page_title"`
	LastRevised time.Time `json:"last_revised"`
}

// DueEntry is a page whose revision is overdue.
type DueEntry struct {
	// PageTitle is the page needing revision.
	PageTitle string

	// Topic is the bucket derived from the title prefix.
	Topic string

	// DaysSince is the whole-day difference between now and the last
	// revision.
	DaysSince int
}

// TopicOf derives a topic bucket from a page title by splitting on the first
// occurrence of any separator character. Titles without a separator, or with
// an empty prefix, fall into the general bucket. This is a display heuristic,
// not a validated taxonomy.
func TopicOf(title, separators string) string {
	if separators == "" {
		separators = DefaultTopicSeparators
	}
	if i := strings.IndexAny(title, separators); i >= 0 {
		if topic := strings.TrimSpace(title[:i]); topic != "" {
			return topic
		}
	}
	return GeneralTopic
}
