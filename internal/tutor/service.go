// Package tutor answers chat messages with a language model, producing the
// reply payloads the chat client classifies: lesson, practice and error
// objects, or bare text.
package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/llm"
)

// Purpose labels tutor calls in the LLM audit log.
const Purpose = "tutor-reply"

var ErrEmptyMessage = errors.New("message is required")

// Question is one inbound chat message.
type Question struct {
	Message   string
	SessionID string
	Topic     string
}

type Options struct {
	// Timeout bounds one Answer call; zero means no extra deadline.
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	Logger      *zap.Logger
}

type Service struct {
	provider llm.Provider
	opts     Options
	logger   *zap.Logger
}

func NewService(provider llm.Provider, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, opts: opts, logger: logger.Named("tutor")}
}

// Answer returns a map[string]any for structured replies and a string for
// text replies. Provider errors are returned wrapped.
func (s *Service) Answer(ctx context.Context, q Question) (any, error) {
	msg := strings.TrimSpace(q.Message)
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	ctx = llm.WithSessionID(llm.WithPurpose(ctx, Purpose), q.SessionID)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt(q.Topic),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      replySchema,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	var w wireReply
	if err := json.Unmarshal(resp.Content, &w); err != nil {
		return nil, fmt.Errorf("decode reply: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	payload := w.payload()
	s.logger.Debug("answered",
		zap.String("session_id", q.SessionID),
		zap.String("kind", w.Type),
		zap.Int("output_tokens", resp.Usage.OutputTokens))
	return payload, nil
}

// payload converts the flat model reply into the chat API shape, using the
// same value types encoding/json decodes into. Empty optional fields are
// left out so clients see only what applies.
func (w wireReply) payload() any {
	switch w.Type {
	case kindLesson:
		examples := make([]any, 0, len(w.Examples))
		for _, ex := range w.Examples {
			e := map[string]any{
				"problem": ex.Problem,
				"steps":   anyList(ex.Steps),
			}
			putString(e, "final_answer", ex.FinalAnswer)
			examples = append(examples, e)
		}
		return map[string]any{
			"type":     kindLesson,
			"topic":    w.Topic,
			"concepts": anyList(w.Concepts),
			"examples": examples,
		}
	case kindPractice:
		out := map[string]any{"type": kindPractice}
		putString(out, "final_answer", w.FinalAnswer)
		if len(w.Steps) > 0 {
			out["steps"] = anyList(w.Steps)
		}
		putString(out, "explanation", w.Explanation)
		return out
	case kindError:
		return map[string]any{"type": kindError, "explanation": w.Explanation}
	default:
		if w.Text == "" {
			return w.Explanation
		}
		return w.Text
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func anyList(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
