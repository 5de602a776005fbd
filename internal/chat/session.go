package chat

import "strings"

// Role identifies who wrote a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the tutor conversation.
type Message struct {
	Role    Role
	Text    string
	IsError bool
}

// Turn is a message reshaped for the backend: a role plus its text parts.
type Turn struct {
	Role  Role
	Parts []string
}

// Session holds the conversation with the tutor. It is append-only after the
// seed message and tracks whether a send is in flight.
type Session struct {
	messages []Message
	sending  bool
}

// NewSession creates a session seeded with a model greeting. An empty seed
// starts with no messages.
func NewSession(seed string) *Session {
	s := &Session{}
	if seed != "" {
		s.messages = append(s.messages, Message{Role: RoleModel, Text: seed})
	}
	return s
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

// Len returns the number of messages.
func (s *Session) Len() int {
	return len(s.messages)
}

// Sending reports whether a message is awaiting a reply.
func (s *Session) Sending() bool {
	return s.sending
}

// CanSend reports whether input may be sent now.
func (s *Session) CanSend(input string) bool {
	return !s.sending && strings.TrimSpace(input) != ""
}

// Begin appends the user's message and enters the sending state. It returns
// the transcript as it was before the new message, reshaped for the backend.
// ok is false (and nothing changes) when CanSend would be false.
func (s *Session) Begin(input string) (history []Turn, ok bool) {
	if !s.CanSend(input) {
		return nil, false
	}
	history = Turns(s.messages)
	s.messages = append(s.messages, Message{Role: RoleUser, Text: input})
	s.sending = true
	return history, true
}

// Complete appends the model reply and returns to idle.
func (s *Session) Complete(reply string) {
	s.messages = append(s.messages, Message{Role: RoleModel, Text: reply})
	s.sending = false
}

// Fail appends an error-flagged notice and returns to idle.
func (s *Session) Fail(notice string) {
	s.messages = append(s.messages, Message{Role: RoleModel, Text: notice, IsError: true})
	s.sending = false
}

// Turns reshapes messages into backend turns, one text part per message.
// The whole transcript is included; there is no truncation.
func Turns(msgs []Message) []Turn {
	out := make([]Turn, len(msgs))
	for i, m := range msgs {
		out[i] = Turn{Role: m.Role, Parts: []string{m.Text}}
	}
	return out
}
