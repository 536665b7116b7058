package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/llm"
)

// contextProvider records the labels attached to the request context.
type contextProvider struct {
	llm.Provider
	purpose, session string
}

func (p *contextProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.purpose = llm.PurposeFrom(ctx)
	p.session = llm.SessionIDFrom(ctx)
	return p.Provider.Generate(ctx, req)
}

func jsonOf(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestAnswerShapes(t *testing.T) {
	tests := []struct {
		name     string
		model    string
		want     string
		wantKind content.Kind
	}{
		{
			name:     "lesson",
			model:    `{"type":"lesson","topic":"Fractions","concepts":["Numerator"],"examples":[{"problem":"1/2+1/4","steps":["Common denominator"],"final_answer":"3/4"}],"final_answer":"","steps":[],"explanation":"","text":""}`,
			want:     `{"type":"lesson","topic":"Fractions","concepts":["Numerator"],"examples":[{"problem":"1/2+1/4","steps":["Common denominator"],"final_answer":"3/4"}]}`,
			wantKind: content.KindLesson,
		},
		{
			name:     "lesson example without answer",
			model:    `{"type":"lesson","topic":"Cells","concepts":[],"examples":[{"problem":"Name a part","steps":["Look"],"final_answer":""}],"final_answer":"","steps":[],"explanation":"","text":""}`,
			want:     `{"type":"lesson","topic":"Cells","concepts":[],"examples":[{"problem":"Name a part","steps":["Look"]}]}`,
			wantKind: content.KindLesson,
		},
		{
			name:     "practice drops empty fields",
			model:    `{"type":"practice","topic":"","concepts":[],"examples":[],"final_answer":"12","steps":[],"explanation":"Three fours.","text":""}`,
			want:     `{"type":"practice","final_answer":"12","explanation":"Three fours."}`,
			wantKind: content.KindPractice,
		},
		{
			name:     "error",
			model:    `{"type":"error","topic":"","concepts":[],"examples":[],"final_answer":"","steps":[],"explanation":"Not schoolwork.","text":""}`,
			want:     `{"type":"error","explanation":"Not schoolwork."}`,
			wantKind: content.KindError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.model)})
			svc := NewService(mock, Options{})

			got, err := svc.Answer(context.Background(), Question{Message: "hi"})
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, jsonOf(t, got))
			assert.Equal(t, tt.wantKind, content.KindOf(content.Classify(got)))
		})
	}
}

func TestAnswerTextIsBareString(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"type":"text","topic":"","concepts":[],"examples":[],"final_answer":"","steps":[],"explanation":"","text":"Hello there!"}`,
	)})
	got, err := NewService(mock, Options{}).Answer(context.Background(), Question{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", got)
}

func TestAnswerSendsPromptAndLabels(t *testing.T) {
	mock := llm.NewResponderProvider(Offline)
	p := &contextProvider{Provider: mock}
	svc := NewService(p, Options{MaxTokens: 300})

	_, err := svc.Answer(context.Background(), Question{Message: "  2 + 2  ", SessionID: "s-7", Topic: "algebra"})
	require.NoError(t, err)

	assert.Equal(t, Purpose, p.purpose)
	assert.Equal(t, "s-7", p.session)
	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, "2 + 2", req.Messages[0].Content)
	assert.Contains(t, req.System, "currently studying algebra")
	assert.Equal(t, "tutor-reply", req.Schema.Name)
	assert.Equal(t, 300, req.MaxTokens)
}

func TestAnswerRejectsEmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, Options{}).Answer(context.Background(), Question{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, mock.CallCount())
}

func TestAnswerWrapsProviderErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := NewService(mock, Options{}).Answer(context.Background(), Question{Message: "hi"})

	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
	assert.ErrorContains(t, err, "generate reply")
}

func TestReplySchemaRejectsMissingFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"type":"practice","final_answer":"4"}`)})
	_, err := NewService(mock, Options{}).Answer(context.Background(), Question{Message: "hi"})

	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestSystemPrompt(t *testing.T) {
	assert.Equal(t, basePrompt, systemPrompt("  "))
	assert.Contains(t, systemPrompt("Biology"), "studying Biology")
}
