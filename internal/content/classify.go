package content

import (
	"encoding/json"
	"strings"
)

// shape recognizes one reply shape in a decoded JSON object.
type shape func(obj map[string]any) (Content, bool)

// shapes are tried in order; the first match wins.
var shapes = []shape{
	lessonShape,
	errorShape,
	practiceShape,
}

// Classify maps a raw reply to exactly one Content variant.
//
// raw is normally a decoded JSON object (map[string]any) or a string. Any
// other value is converted to text first. Classify never fails: input that
// matches no structured shape becomes PlainText.
func Classify(raw any) Content {
	obj, isObject := raw.(map[string]any)
	if isObject && obj == nil {
		isObject = false
	}

	var text string
	if !isObject {
		text = normalizeText(rawText(raw))
		obj = objectCandidate(text)
	}

	if obj != nil {
		for _, match := range shapes {
			if c, ok := match(obj); ok {
				return c
			}
		}
		if isObject {
			return PlainText{Text: encodeObject(obj)}
		}
		return PlainText{Text: text}
	}

	if items, ok := numberedItems(text); ok {
		return NumberedList{Items: items}
	}
	return PlainText{Text: text}
}

func lessonShape(obj map[string]any) (Content, bool) {
	if typeField(obj) != "lesson" {
		return nil, false
	}
	return Lesson{
		Topic:    stringField(obj, "topic"),
		Concepts: stringsField(obj, "concepts"),
		Examples: examplesField(obj, "examples"),
	}, true
}

func errorShape(obj map[string]any) (Content, bool) {
	if typeField(obj) != "error" {
		return nil, false
	}
	return ErrorContent{Explanation: stringField(obj, "explanation")}, true
}

func practiceShape(obj map[string]any) (Content, bool) {
	// A type that is not a string reads as absent.
	switch t, isString := obj["type"].(string); {
	case isString && t == "practice":
	case !isString:
		if !hasString(obj, "final_answer") && !hasArray(obj, "steps") && !hasString(obj, "explanation") {
			return nil, false
		}
	default:
		return nil, false
	}
	return Practice{
		FinalAnswer: stringField(obj, "final_answer"),
		Steps:       stringsField(obj, "steps"),
		Explanation: stringField(obj, "explanation"),
	}, true
}

// objectCandidate parses text as a JSON object, falling back to the span
// between the first '{' and the last '}' for JSON wrapped in prose.
func objectCandidate(text string) map[string]any {
	if obj, ok := parseObject(text); ok {
		return obj
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}
	if obj, ok := parseObject(text[start : end+1]); ok {
		return obj
	}
	return nil
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// rawText converts a non-object raw reply to the string it represents.
func rawText(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.RawMessage:
		return string(v)
	case []byte:
		return string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// normalizeText converts CRLF and lone CR line endings to LF and trims.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.TrimSpace(s)
}

func encodeObject(obj map[string]any) string {
	b, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(b)
}
