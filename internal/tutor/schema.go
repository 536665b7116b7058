package tutor

import "github.com/abhisek/solvewise/internal/llm"

// Reply kinds the model may choose.
const (
	kindLesson   = "lesson"
	kindPractice = "practice"
	kindError    = "error"
	kindText     = "text"
)

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// replySchema is a single flat object so it fits the strict structured
// output modes, which need every property required and no extras. Fields
// that do not apply to the chosen kind are sent empty.
var replySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "One tutoring reply: a lesson, a worked practice answer, an error, or plain text.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": []any{kindLesson, kindPractice, kindError, kindText},
			},
			"topic":    map[string]any{"type": "string"},
			"concepts": stringList,
			"examples": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"problem":      map[string]any{"type": "string"},
						"steps":        stringList,
						"final_answer": map[string]any{"type": "string"},
					},
					"required":             []any{"problem", "steps", "final_answer"},
					"additionalProperties": false,
				},
			},
			"final_answer": map[string]any{"type": "string"},
			"steps":        stringList,
			"explanation":  map[string]any{"type": "string"},
			"text":         map[string]any{"type": "string"},
		},
		"required": []any{
			"type", "topic", "concepts", "examples",
			"final_answer", "steps", "explanation", "text",
		},
		"additionalProperties": false,
	},
}

// wireReply mirrors replySchema.
type wireReply struct {
	Type        string        `json:"type"`
	Topic       string        `json:"topic"`
	Concepts    []string      `json:"concepts"`
	Examples    []wireExample `json:"examples"`
	FinalAnswer string        `json:"final_answer"`
	Steps       []string      `json:"steps"`
	Explanation string        `json:"explanation"`
	Text        string        `json:"text"`
}

type wireExample struct {
	Problem     string   `json:"problem"`
	Steps       []string `json:"steps"`
	FinalAnswer string   `json:"final_answer"`
}
