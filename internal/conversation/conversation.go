// Package conversation holds the chat transcript shared by the extraction
// engine, the question queue, and prompt assembly.
package conversation

import "time"

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single message in the planning conversation.
type Turn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Transcript is the ordered conversation history, oldest first.
type Transcript []Turn

// Append returns the transcript with a new turn added.
func (t Transcript) Append(role Role, content string) Transcript {
	return append(t, Turn{Role: role, Content: content, At: time.Now()})
}

// UserTurns returns only the user-authored turns, in order.
func (t Transcript) UserTurns() []Turn {
	var out []Turn
	for _, turn := range t {
		if turn.Role == RoleUser {
			out = append(out, turn)
		}
	}
	return out
}

// AssistantTurns returns only the assistant-authored turns, in order.
func (t Transcript) AssistantTurns() []Turn {
	var out []Turn
	for _, turn := range t {
		if turn.Role == RoleAssistant {
			out = append(out, turn)
		}
	}
	return out
}

// Tail returns the last n turns, or the whole transcript when it is
// shorter. Prompt assembly uses this to cap request size.
func (t Transcript) Tail(n int) Transcript {
	if n <= 0 || len(t) <= n {
		return t
	}
	return t[len(t)-n:]
}
