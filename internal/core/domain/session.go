package domain

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

// Session accumulates conversational turns under a caller-scoped identifier.
// History is append-only and held in memory only; it does not survive a
// process restart.
type Session struct {
	ID    string
	Turns []Turn
}

// Append records a completed turn.
func (s *Session) Append(question, answer string) {
	s.Turns = append(s.Turns, Turn{Question: question, Answer: answer})
}
