package chat

import "github.com/abhisek/solvewise/internal/content"

// replyMsg is sent when the in-flight request settles, successfully or not.
type replyMsg struct {
	Content content.Content
}
