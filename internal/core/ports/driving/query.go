package driving

import "context"

// QueryEngine answers questions and generates quizzes over indexed content.
// Conversation history is accumulated per session identifier, created on
// first use and held in memory only.
type QueryEngine interface {
	// Ask retrieves the chunks most relevant to the question, augments the
	// question with them and returns the model's answer.
	Ask(ctx context.Context, question, sessionID string) (string, error)

	// AskStream is Ask with the answer delivered as an ordered sequence of
	// text fragments. The fragments channel closes when the answer is
	// complete; at most one error arrives on the error channel.
	AskStream(ctx context.Context, question, sessionID string) (<-chan string, <-chan error)

	// GenerateQuiz produces revision questions over the given content,
	// one model call per quiz-sized chunk, concatenated in chunk order.
	GenerateQuiz(ctx context.Context, content string) (string, error)
}
