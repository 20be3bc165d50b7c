// Package chunker splits page text into fixed-size overlapping character
// spans suitable for embedding.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/revisehq/revise-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per retrieval chunk.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// QuizChunkSize is the larger window used when generating quiz questions.
const QuizChunkSize = 3000

// QuizChunkOverlap is the overlap for quiz chunking.
const QuizChunkOverlap = 200

// Splitter produces deterministic overlapping chunks: the same text, size
// and overlap always yield the same sequence of chunk strings.
type Splitter struct {
	size    int
	overlap int
}

// New creates a splitter. A size that does not exceed the overlap is a
// configuration error, not a runtime fault to recover from.
func New(size, overlap int) (*Splitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunker: overlap must not be negative, got %d", overlap)
	}
	if size <= overlap {
		return nil, fmt.Errorf("chunker: size (%d) must exceed overlap (%d)", size, overlap)
	}
	return &Splitter{size: size, overlap: overlap}, nil
}

// Split returns the ordered chunk strings for text. Consecutive chunks
// overlap by exactly the configured overlap; the final chunk may be shorter
// than the chunk size. Empty text yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	step := s.size - s.overlap
	chunks := make([]string, 0, len(text)/step+1)

	for start := 0; start < len(text); start += step {
		end := start + s.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
		if end == len(text) {
			break
		}
	}

	return chunks
}

// Chunks splits a page's content and wraps each span as a domain chunk
// tagged with the page title. Chunk IDs are fresh UUIDs; the old points for
// the title are deleted before these are upserted, so IDs never collide.
func (s *Splitter) Chunks(page domain.Page) []domain.Chunk {
	spans := s.Split(page.Content)
	chunks := make([]domain.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = domain.Chunk{
			ID:        uuid.New().String(),
			PageTitle: page.Title,
			Content:   span,
			Position:  i,
		}
	}
	return chunks
}
