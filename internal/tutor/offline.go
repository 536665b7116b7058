package tutor

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhisek/solvewise/internal/llm"
)

var (
	teachPattern = regexp.MustCompile(`(?i)^\s*(?:teach me|explain|what is)\s+(?:about\s+)?([a-z][a-z ]*?)[.?!]*\s*$`)
	mathPattern  = regexp.MustCompile(`(?i)^\s*(?:what is|solve|calculate)?\s*(-?\d+(?:\.\d+)?)\s*([-+*/x×÷])\s*(-?\d+(?:\.\d+)?)\s*[?=.]*\s*$`)
)

// Offline answers without a model so `solvewise serve` works with the mock
// provider. It recognizes "Teach me <subject>" and two-operand arithmetic;
// everything else gets a list of suggestions.
func Offline(req llm.Request) (json.RawMessage, error) {
	var msg string
	if n := len(req.Messages); n > 0 {
		msg = req.Messages[n-1].Content
	}

	var w wireReply
	if m := mathPattern.FindStringSubmatch(msg); m != nil {
		w = arithmetic(m[1], m[2], m[3])
	} else if m := teachPattern.FindStringSubmatch(msg); m != nil {
		w = lesson(strings.TrimSpace(m[1]))
	} else {
		w = wireReply{
			Type: kindText,
			Text: "Here is what I can help with:\n" +
				"1. Ask me to teach a subject, like \"Teach me science.\"\n" +
				"2. Give me a calculation such as 12 * 7.\n" +
				"3. Pick a prompt with Ctrl+P.",
		}
	}
	return json.Marshal(w.filled())
}

// filled replaces nil lists so the reply satisfies replySchema.
func (w wireReply) filled() wireReply {
	w.Concepts = nonNil(w.Concepts)
	w.Steps = nonNil(w.Steps)
	if w.Examples == nil {
		w.Examples = []wireExample{}
	}
	for i := range w.Examples {
		w.Examples[i].Steps = nonNil(w.Examples[i].Steps)
	}
	return w
}

func arithmetic(left, op, right string) wireReply {
	a, _ := strconv.ParseFloat(left, 64)
	b, _ := strconv.ParseFloat(right, 64)

	var (
		result float64
		verb   string
	)
	switch op {
	case "+":
		result, verb = a+b, "Add"
	case "-":
		result, verb = a-b, "Subtract"
	case "*", "x", "X", "×":
		result, verb = a*b, "Multiply"
	default:
		if b == 0 {
			return wireReply{Type: kindError, Explanation: "Division by zero is undefined."}
		}
		result, verb = a/b, "Divide"
	}

	answer := strconv.FormatFloat(result, 'f', -1, 64)
	return wireReply{
		Type:        kindPractice,
		FinalAnswer: answer,
		Steps: []string{
			fmt.Sprintf("Identify the operation: %s %s %s", left, op, right),
			fmt.Sprintf("%s: %s", verb, answer),
		},
		Explanation: fmt.Sprintf("%s %s and %s to get %s.", verb, left, right, answer),
	}
}

func lesson(subject string) wireReply {
	topic := strings.ToUpper(subject[:1]) + subject[1:]
	return wireReply{
		Type:  kindLesson,
		Topic: topic,
		Concepts: []string{
			fmt.Sprintf("What %s studies", subject),
			fmt.Sprintf("Core vocabulary of %s", subject),
			fmt.Sprintf("How %s shows up in everyday life", subject),
		},
		Examples: []wireExample{{
			Problem: fmt.Sprintf("Name one question %s can answer.", subject),
			Steps: []string{
				fmt.Sprintf("Recall a topic covered by %s", subject),
				"Phrase it as a question",
			},
			FinalAnswer: fmt.Sprintf("Any question about %s, stated clearly.", subject),
		}},
	}
}
