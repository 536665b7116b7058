// Package conversation owns the visible chat: the append-only turn list and
// the single in-flight request.
package conversation

import (
	"time"

	"github.com/abhisek/solvewise/internal/content"
)

// Role is who produced a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one displayed message. Turns are never modified after creation.
type Turn struct {
	ID      string
	Role    Role
	Content content.Content
	Time    time.Time
}

// DisplayTime formats the turn timestamp as hours and minutes.
func (t Turn) DisplayTime() string {
	return t.Time.Format("15:04")
}

// IsUser reports whether the turn was typed by the user.
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}
