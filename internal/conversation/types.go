package conversation

import "time"

// Role identifies the author of a message. System and tool turns are
// filtered out at parse time; the segmentation engine only ever sees
// user and assistant messages.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation. Index is the 0-based position
// in the original message list and stays stable through segmentation.
// Timestamp is the zero value when the source export carried none.
type Message struct {
	Role      Role
	Index     int
	Text      string
	Timestamp time.Time
}

// HasTimestamp reports whether the message carries a real timestamp.
func (m Message) HasTimestamp() bool {
	return !m.Timestamp.IsZero()
}

// Conversation is a parsed chat export: an ordered, gap-free message list.
type Conversation struct {
	ID        string
	Title     string
	Source    string // "chatgpt", "claude", "markdown"
	CreatedAt time.Time
	Messages  []Message
}

// FirstByRole returns the first message with the given role, or nil.
func FirstByRole(messages []Message, role Role) *Message {
	for i := range messages {
		if messages[i].Role == role {
			return &messages[i]
		}
	}
	return nil
}

// HasRole reports whether any message has the given role.
func HasRole(messages []Message, role Role) bool {
	return FirstByRole(messages, role) != nil
}
