package content

import (
	"encoding/json"
	"fmt"
	"strings"
)

type exampleWire struct {
	Problem     string   `json:"problem"`
	Steps       []string `json:"steps"`
	FinalAnswer string   `json:"final_answer,omitempty"`
}

type lessonWire struct {
	Type     string        `json:"type"`
	Topic    string        `json:"topic"`
	Concepts []string      `json:"concepts"`
	Examples []exampleWire `json:"examples"`
}

type practiceWire struct {
	Type        string   `json:"type"`
	FinalAnswer string   `json:"final_answer,omitempty"`
	Steps       []string `json:"steps"`
	Explanation string   `json:"explanation,omitempty"`
}

type errorWire struct {
	Type        string `json:"type"`
	Explanation string `json:"explanation"`
}

// Canonical renders c back into the text form a tutor would send for it:
// reply JSON for lessons, practice answers and errors, numbered lines for
// lists, and the text itself for plain text. Classify(Canonical(c)) yields
// c again for the structured shapes.
func Canonical(c Content) string {
	switch v := c.(type) {
	case Lesson:
		return mustJSON(lessonToWire(v))
	case Practice:
		return mustJSON(practiceWire{
			Type:        string(KindPractice),
			FinalAnswer: v.FinalAnswer,
			Steps:       orEmpty(v.Steps),
			Explanation: v.Explanation,
		})
	case ErrorContent:
		return mustJSON(errorWire{Type: string(KindError), Explanation: v.Explanation})
	case NumberedList:
		lines := make([]string, len(v.Items))
		for i, item := range v.Items {
			lines[i] = fmt.Sprintf("%d. %s", i+1, item)
		}
		return strings.Join(lines, "\n")
	case PlainText:
		return v.Text
	default:
		return ""
	}
}

// Encode returns the tagged JSON form of c used for machine-readable
// output: {"kind": ..., "content": ...}.
func Encode(c Content) ([]byte, error) {
	var body any
	switch v := c.(type) {
	case Lesson:
		body = lessonToWire(v)
	case Practice:
		body = practiceWire{
			Type:        string(KindPractice),
			FinalAnswer: v.FinalAnswer,
			Steps:       orEmpty(v.Steps),
			Explanation: v.Explanation,
		}
	case ErrorContent:
		body = errorWire{Type: string(KindError), Explanation: v.Explanation}
	case NumberedList:
		body = map[string]any{"items": orEmpty(v.Items)}
	case PlainText:
		body = map[string]any{"text": v.Text}
	default:
		return nil, fmt.Errorf("encode content: unknown variant %T", c)
	}
	return json.MarshalIndent(map[string]any{
		"kind":    c.Kind(),
		"content": body,
	}, "", "  ")
}

func lessonToWire(l Lesson) lessonWire {
	examples := make([]exampleWire, len(l.Examples))
	for i, ex := range l.Examples {
		examples[i] = exampleWire{
			Problem:     ex.Problem,
			Steps:       orEmpty(ex.Steps),
			FinalAnswer: ex.FinalAnswer,
		}
	}
	return lessonWire{
		Type:     string(KindLesson),
		Topic:    l.Topic,
		Concepts: orEmpty(l.Concepts),
		Examples: examples,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// mustJSON marshals values whose types cannot fail to encode.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("content: marshal %T: %v", v, err))
	}
	return string(b)
}
