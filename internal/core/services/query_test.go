package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
)

// --- Mock implementations for query testing ---

// queryMockLLM implements driven.LLMService for testing. It records the
// messages it was called with and returns canned answers.
type queryMockLLM struct {
	answer          string
	generateAnswers []string
	generateCalls   int
	chatMessages    [][]driven.ChatMessage
	streamFragments []string
	chatErr         error
}

func (m *queryMockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if m.chatErr != nil {
		return "", m.chatErr
	}
	m.generateCalls++
	if len(m.generateAnswers) > 0 {
		answer := m.generateAnswers[0]
		m.generateAnswers = m.generateAnswers[1:]
		return answer, nil
	}
	return fmt.Sprintf("quiz for: %s", prompt), nil
}

func (m *queryMockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.GenerateOptions) (string, error) {
	if m.chatErr != nil {
		return "", m.chatErr
	}
	m.chatMessages = append(m.chatMessages, messages)
	return m.answer, nil
}

func (m *queryMockLLM) ChatStream(ctx context.Context, messages []driven.ChatMessage, _ driven.GenerateOptions) (<-chan string, <-chan error) {
	fragments := make(chan string)
	errs := make(chan error, 1)

	m.chatMessages = append(m.chatMessages, messages)

	go func() {
		defer close(fragments)
		defer close(errs)

		if m.chatErr != nil {
			errs <- m.chatErr
			return
		}
		for _, fragment := range m.streamFragments {
			select {
			case fragments <- fragment:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return fragments, errs
}

func (m *queryMockLLM) ModelName() string            { return "mock-llm" }
func (m *queryMockLLM) Ping(_ context.Context) error { return nil }
func (m *queryMockLLM) Close() error                 { return nil }

func newTestQueryEngine(searchResult []domain.ScoredChunk) (*QueryEngine, *queryMockLLM, *indexMockVectorIndex) {
	index := &indexMockVectorIndex{searchResult: searchResult}
	embedder := &indexMockEmbedder{dimensions: 4}
	llm := &queryMockLLM{answer: "the answer"}
	return NewQueryEngine(embedder, index, llm, 0), llm, index
}

func TestQueryEngine_Ask_IncludesRetrievedContext(t *testing.T) {
	engine, llm, _ := newTestQueryEngine([]domain.ScoredChunk{
		{Chunk: domain.Chunk{Content: "channels carry typed values"}, Score: 0.9},
		{Chunk: domain.Chunk{Content: "select waits on several channels"}, Score: 0.7},
	})

	answer, err := engine.Ask(context.Background(), "what do channels do?", "s1")
	require.NoError(t, err)
	assert.Equal(t, "the answer", answer)

	require.Len(t, llm.chatMessages, 1)
	messages := llm.chatMessages[0]
	require.NotEmpty(t, messages)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "channels carry typed values")
	assert.Contains(t, messages[0].Content, "select waits on several channels")
	assert.Equal(t, "what do channels do?", messages[len(messages)-1].Content)
}

func TestQueryEngine_Ask_SessionHistoryCarriesForward(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)

	_, err := engine.Ask(context.Background(), "first question", "s1")
	require.NoError(t, err)
	_, err = engine.Ask(context.Background(), "second question", "s1")
	require.NoError(t, err)

	require.Len(t, llm.chatMessages, 2)
	second := llm.chatMessages[1]
	// system + prior user/assistant pair + new question
	require.Len(t, second, 4)
	assert.Equal(t, "first question", second[1].Content)
	assert.Equal(t, "the answer", second[2].Content)
	assert.Equal(t, "assistant", second[2].Role)
	assert.Equal(t, "second question", second[3].Content)
}

func TestQueryEngine_Ask_SessionsAreIsolated(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)

	_, err := engine.Ask(context.Background(), "question in s1", "s1")
	require.NoError(t, err)
	_, err = engine.Ask(context.Background(), "question in s2", "s2")
	require.NoError(t, err)

	second := llm.chatMessages[1]
	// No history from s1 leaks into s2.
	require.Len(t, second, 2)
	assert.Equal(t, "question in s2", second[1].Content)
}

func TestQueryEngine_Ask_EmbeddingError(t *testing.T) {
	index := &indexMockVectorIndex{}
	embedder := &indexMockEmbedder{dimensions: 4, embedErr: errors.New("model loading")}
	engine := NewQueryEngine(embedder, index, &queryMockLLM{}, 0)

	_, err := engine.Ask(context.Background(), "q", "s1")
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestQueryEngine_Ask_SearchError(t *testing.T) {
	engine, _, index := newTestQueryEngine(nil)
	index.searchErr = errors.New("collection missing")

	_, err := engine.Ask(context.Background(), "q", "s1")
	assert.ErrorIs(t, err, domain.ErrVectorIndexUnavailable)
}

func TestQueryEngine_AskStream(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)
	llm.streamFragments = []string{"the ", "answer"}

	fragments, errs := engine.AskStream(context.Background(), "q", "s1")

	var got strings.Builder
	for fragment := range fragments {
		got.WriteString(fragment)
	}
	assert.NoError(t, <-errs)
	assert.Equal(t, "the answer", got.String())

	// The accumulated answer lands in session history.
	_, err := engine.Ask(context.Background(), "followup", "s1")
	require.NoError(t, err)
	last := llm.chatMessages[len(llm.chatMessages)-1]
	require.Len(t, last, 4)
	assert.Equal(t, "the answer", last[2].Content)
}

func TestQueryEngine_AskStream_LLMError(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)
	llm.chatErr = errors.New("model overloaded")

	fragments, errs := engine.AskStream(context.Background(), "q", "s1")
	for range fragments {
	}
	assert.ErrorIs(t, <-errs, domain.ErrLLMUnavailable)
}

func TestQueryEngine_GenerateQuiz_SingleChunk(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)
	llm.generateAnswers = []string{"Q1. What is a channel?"}

	quiz, err := engine.GenerateQuiz(context.Background(), "short content")
	require.NoError(t, err)
	assert.Equal(t, "Q1. What is a channel?", quiz)
	assert.Equal(t, 1, llm.generateCalls)
}

func TestQueryEngine_GenerateQuiz_LongContentChunksInOrder(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)
	llm.generateAnswers = []string{"first section", "second section"}

	quiz, err := engine.GenerateQuiz(context.Background(), strings.Repeat("x", 4000))
	require.NoError(t, err)
	assert.Equal(t, "first section\n\nsecond section", quiz)
	assert.Equal(t, 2, llm.generateCalls)
}

func TestQueryEngine_GenerateQuiz_LLMError(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)
	llm.chatErr = errors.New("quota exceeded")

	_, err := engine.GenerateQuiz(context.Background(), "content")
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestQueryEngine_Ask_EmptySessionIDGetsFreshSession(t *testing.T) {
	engine, llm, _ := newTestQueryEngine(nil)

	_, err := engine.Ask(context.Background(), "one", "")
	require.NoError(t, err)
	_, err = engine.Ask(context.Background(), "two", "")
	require.NoError(t, err)

	// Anonymous sessions never share history.
	second := llm.chatMessages[1]
	require.Len(t, second, 2)
}

func TestQueryEngine_RetrievalDepth(t *testing.T) {
	engine, _, index := newTestQueryEngine(nil)

	_, err := engine.Ask(context.Background(), "q", "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTopK, index.searchLimit)

	index = &indexMockVectorIndex{}
	engine = NewQueryEngine(&indexMockEmbedder{dimensions: 4}, index, &queryMockLLM{}, 8)
	_, err = engine.Ask(context.Background(), "q", "s1")
	require.NoError(t, err)
	assert.Equal(t, 8, index.searchLimit)
}
