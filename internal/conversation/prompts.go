package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/solvewise/internal/content"
)

// WelcomeID is the ID of the greeting turn every conversation starts with.
const WelcomeID = "welcome"

const welcomeText = "Hi! I am SolveWise, your learning companion. Tell me what you want to learn, " +
	"and I will create a clear, step-by-step path with examples and practice."

// Subjects are offered as one-shot "teach me" prompts.
var Subjects = []string{
	"Mathematics",
	"Science",
	"Psychology",
	"Literature",
}

// QuickPrompts are ready-made requests shown next to the subjects.
var QuickPrompts = []string{
	"Explain photosynthesis in 3 steps.",
	"Help me plan a study schedule for calculus.",
	"Teach me the basics of cognitive biases.",
	"Summarize the causes of World War I.",
}

// SubjectPrompt is the message sent when a subject is picked.
func SubjectPrompt(subject string) string {
	return fmt.Sprintf("Teach me %s.", strings.ToLower(subject))
}

// WelcomeTurn returns the assistant greeting shown before any exchange.
func WelcomeTurn(now time.Time) Turn {
	return Turn{
		ID:      WelcomeID,
		Role:    RoleAssistant,
		Content: content.PlainText{Text: welcomeText},
		Time:    now,
	}
}
