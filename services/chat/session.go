package chat

import "grillbook/models"

// Session is one logical conversation between a client and the assistant.
// All access happens from the session's single transport goroutine, so the
// struct itself needs no locking.
type Session struct {
	// Messages is the append-only, oldest-first history replayed to the
	// completion endpoint on every open-domain turn.
	Messages []models.Message

	// Summary is the grounding text, loaded once at creation and immutable
	// for the session's lifetime.
	Summary string

	// State is the current dialogue state; StateNone between flows.
	State models.BookingState

	// Draft holds the partially collected booking fields; empty whenever
	// State is StateNone.
	Draft models.BookingDraft
}

// Append records one turn at the end of the history.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, models.Message{Role: role, Content: content})
}
