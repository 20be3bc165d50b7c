package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicOf_ColonSeparator(t *testing.T) {
	assert.Equal(t, "Algebra", TopicOf("Algebra: Basics", DefaultTopicSeparators))
}

func TestTopicOf_DashSeparator(t *testing.T) {
	assert.Equal(t, "Go", TopicOf("Go - Concurrency", DefaultTopicSeparators))
}

func TestTopicOf_FirstSeparatorWins(t *testing.T) {
	assert.Equal(t, "Maths", TopicOf("Maths: Algebra - Groups", DefaultTopicSeparators))
}

func TestTopicOf_NoSeparator(t *testing.T) {
	assert.Equal(t, GeneralTopic, TopicOf("Untitled", DefaultTopicSeparators))
}

func TestTopicOf_EmptyPrefix(t *testing.T) {
	assert.Equal(t, GeneralTopic, TopicOf(": dangling", DefaultTopicSeparators))
}

func TestTopicOf_CustomSeparators(t *testing.T) {
	assert.Equal(t, "Week 3", TopicOf("Week 3 / Notes", "/"))
}

func TestTopicOf_EmptySeparatorsFallsBackToDefaults(t *testing.T) {
	assert.Equal(t, "Algebra", TopicOf("Algebra: Basics", ""))
}
