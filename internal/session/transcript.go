package session

import (
	"time"

	"github.com/google/uuid"
)

// Role tags a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one message in a session transcript.
type Entry struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Transcript is the append-only, chronological message history of one
// session. It lives for the session and is dropped on restart.
type Transcript struct {
	entries []Entry
}

func (t *Transcript) Append(role Role, content string) Entry {
	e := Entry{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		At:      time.Now(),
	}
	t.entries = append(t.entries, e)
	return e
}

// Entries returns a copy of the history in order.
func (t *Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int { return len(t.entries) }
