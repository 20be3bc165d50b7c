package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/revisehq/revise-cli/internal/chunker"
	"github.com/revisehq/revise-cli/internal/core/domain"
	"github.com/revisehq/revise-cli/internal/core/ports/driven"
	"github.com/revisehq/revise-cli/internal/core/ports/driving"
	"github.com/revisehq/revise-cli/internal/logger"
)

// Ensure QueryEngine implements the interface.
var _ driving.QueryEngine = (*QueryEngine)(nil)

// maxContextChars bounds the assembled context passed to the model.
const maxContextChars = 4000

// answerSystemPrompt frames the model as a study assistant grounded in the
// retrieved notes.
const answerSystemPrompt = `You are a study assistant answering questions about the user's own notes.
Answer using only the context below. If the context does not contain the
answer, say so rather than guessing.

Context:
%s`

// quizPrompt asks for a fixed taxonomy of revision questions per chunk.
const quizPrompt = `Generate the following types of revision questions based on the content below:
1. 3 Multiple Choice Questions
2. 3 One Word Answer Questions
3. 2 Short Answer Questions
4. 1 Long Answer Question
5. If the content is code-related, generate a 'Explain the Code' question

Content:
%s`

// QueryEngine answers questions over the vector index and generates quizzes.
// Conversation history lives in memory per session identifier and is lost
// when the process exits.
type QueryEngine struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	llm      driven.LLMService
	topK     int

	mu       sync.Mutex
	sessions map[string]*domain.Session
}

// NewQueryEngine creates a query engine. A topK of zero or less selects the
// default retrieval depth.
func NewQueryEngine(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	llm driven.LLMService,
	topK int,
) *QueryEngine {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &QueryEngine{
		embedder: embedder,
		index:    index,
		llm:      llm,
		topK:     topK,
		sessions: make(map[string]*domain.Session),
	}
}

// Ask retrieves the chunks most relevant to the question, augments the
// question with them and returns the model's answer. The exchange is
// recorded in the session history.
func (e *QueryEngine) Ask(ctx context.Context, question, sessionID string) (string, error) {
	session := e.getOrCreateSession(sessionID)

	messages, err := e.buildMessages(ctx, question, session)
	if err != nil {
		return "", err
	}

	answer, err := e.llm.Chat(ctx, messages, driven.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	e.recordTurn(session, question, answer)
	return answer, nil
}

// AskStream is Ask with the answer delivered as a stream of text fragments.
// The full answer is accumulated and recorded in the session history once
// the stream completes without error.
func (e *QueryEngine) AskStream(ctx context.Context, question, sessionID string) (<-chan string, <-chan error) {
	fragments := make(chan string)
	errs := make(chan error, 1)

	session := e.getOrCreateSession(sessionID)

	go func() {
		defer close(fragments)
		defer close(errs)

		messages, err := e.buildMessages(ctx, question, session)
		if err != nil {
			errs <- err
			return
		}

		llmFragments, llmErrs := e.llm.ChatStream(ctx, messages, driven.GenerateOptions{})

		var answer strings.Builder
		for fragment := range llmFragments {
			answer.WriteString(fragment)
			select {
			case fragments <- fragment:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if err := <-llmErrs; err != nil {
			errs <- fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
			return
		}

		e.recordTurn(session, question, answer.String())
	}()

	return fragments, errs
}

// GenerateQuiz produces revision questions over the given content, one model
// call per quiz-sized chunk, concatenated in chunk order.
func (e *QueryEngine) GenerateQuiz(ctx context.Context, content string) (string, error) {
	splitter, err := chunker.New(chunker.QuizChunkSize, chunker.QuizChunkOverlap)
	if err != nil {
		return "", fmt.Errorf("quiz splitter: %w", err)
	}

	var sections []string
	for i, chunk := range splitter.Split(content) {
		logger.Debug("Generating quiz for chunk %d", i+1)
		section, err := e.llm.Generate(ctx, fmt.Sprintf(quizPrompt, chunk), driven.GenerateOptions{})
		if err != nil {
			return "", fmt.Errorf("%w: quiz chunk %d: %w", domain.ErrLLMUnavailable, i+1, err)
		}
		sections = append(sections, strings.TrimSpace(section))
	}

	return strings.Join(sections, "\n\n"), nil
}

// buildMessages retrieves context for the question and assembles the chat
// history for the model.
func (e *QueryEngine) buildMessages(ctx context.Context, question string, session *domain.Session) ([]driven.ChatMessage, error) {
	retrieved, err := e.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	messages := []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(answerSystemPrompt, retrieved)},
	}

	e.mu.Lock()
	for _, turn := range session.Turns {
		messages = append(messages,
			driven.ChatMessage{Role: "user", Content: turn.Question},
			driven.ChatMessage{Role: "assistant", Content: turn.Answer},
		)
	}
	e.mu.Unlock()

	messages = append(messages, driven.ChatMessage{Role: "user", Content: question})
	return messages, nil
}

// retrieve embeds the question, searches the index and joins the best
// chunks into a bounded context block.
func (e *QueryEngine) retrieve(ctx context.Context, question string) (string, error) {
	embedding, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	scored, err := e.index.Search(ctx, embedding, e.topK)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrVectorIndexUnavailable, err)
	}

	var b strings.Builder
	for _, sc := range scored {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if b.Len()+len(sc.Chunk.Content) > maxContextChars {
			break
		}
		b.WriteString(sc.Chunk.Content)
	}
	return b.String(), nil
}

// getOrCreateSession returns the session for the given identifier, creating
// it on first use. An empty identifier gets a fresh anonymous session.
func (e *QueryEngine) getOrCreateSession(sessionID string) *domain.Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	if session, ok := e.sessions[sessionID]; ok {
		return session
	}
	session := &domain.Session{ID: sessionID}
	e.sessions[sessionID] = session
	return session
}

// recordTurn appends a completed exchange to the session history.
func (e *QueryEngine) recordTurn(session *domain.Session, question, answer string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session.Append(question, answer)
}
