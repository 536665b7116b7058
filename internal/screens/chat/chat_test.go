package chat

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/router"
	"github.com/abhisek/solvewise/internal/screen"
	"github.com/abhisek/solvewise/internal/screens/prompts"
	"github.com/abhisek/solvewise/internal/tutorapi"
)

// stubSender returns a fixed reply and records what it was asked.
type stubSender struct {
	reply any
	err   error
	sent  []string
}

func (s *stubSender) Send(_ context.Context, message string, _ tutorapi.RequestContext) (any, error) {
	s.sent = append(s.sent, message)
	return s.reply, s.err
}

func newTestChat(sender *stubSender) (*ChatScreen, *conversation.Controller) {
	ctrl := conversation.NewController(sender, conversation.Options{Topic: "math"})
	return New(context.Background(), ctrl), ctrl
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s screen.Screen, text string) screen.Screen {
	for _, r := range text {
		s, _ = s.Update(keyPress(r))
	}
	return s
}

func TestSubmitStartsRequest(t *testing.T) {
	c, ctrl := newTestChat(&stubSender{reply: "ok"})

	scr := typeText(c, "hi")
	_, cmd := scr.Update(specialKey(tea.KeyEnter))

	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if !ctrl.Pending() {
		t.Error("expected request to be pending")
	}
	if got := len(ctrl.Turns()); got != 2 {
		t.Errorf("expected welcome + user turn, got %d", got)
	}
	if c.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", c.input.Value())
	}
}

func TestEnterOnBlankInputDoesNothing(t *testing.T) {
	c, ctrl := newTestChat(&stubSender{})

	_, cmd := c.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no command for blank submit")
	}
	if ctrl.Pending() {
		t.Error("blank submit must not start a request")
	}
}

func TestInputIgnoredWhilePending(t *testing.T) {
	c, ctrl := newTestChat(&stubSender{})

	typeText(c, "first")
	c.Update(specialKey(tea.KeyEnter))
	typeText(c, "second")

	if c.input.Value() != "" {
		t.Errorf("expected input disabled while pending, got %q", c.input.Value())
	}

	c.Update(prompts.SelectedMsg{Text: "Teach me science."})
	if got := len(ctrl.Turns()); got != 2 {
		t.Errorf("expected no extra turn while pending, got %d turns", got)
	}
	if c.notice == "" {
		t.Error("expected a wait notice")
	}
}

func TestReplyCompletesTurn(t *testing.T) {
	sender := &stubSender{reply: map[string]any{"type": "practice", "final_answer": "4"}}
	c, ctrl := newTestChat(sender)

	typeText(c, "2+2?")
	c.Update(specialKey(tea.KeyEnter))

	msg := c.fetch("2+2?")()
	c.Update(msg)

	if ctrl.Pending() {
		t.Error("expected pending cleared after reply")
	}
	turns := ctrl.Turns()
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	want := content.Practice{FinalAnswer: "4", Steps: []string{}}
	if p, ok := turns[2].Content.(content.Practice); !ok || p.FinalAnswer != want.FinalAnswer {
		t.Errorf("unexpected reply content %#v", turns[2].Content)
	}
	if c.input.Disabled() {
		t.Error("expected input enabled after reply")
	}
	if len(sender.sent) != 1 || sender.sent[0] != "2+2?" {
		t.Errorf("unexpected transport calls %v", sender.sent)
	}
}

func TestFailedRequestAppendsErrorTurn(t *testing.T) {
	c, ctrl := newTestChat(&stubSender{err: &tutorapi.TransportError{StatusCode: 500, Message: "topic required"}})

	typeText(c, "hello")
	c.Update(specialKey(tea.KeyEnter))
	c.Update(c.fetch("hello")())

	turns := ctrl.Turns()
	got, ok := turns[len(turns)-1].Content.(content.ErrorContent)
	if !ok || got.Explanation != "topic required" {
		t.Errorf("expected error turn, got %#v", turns[len(turns)-1].Content)
	}

	view := c.View(100, 30)
	if !strings.Contains(view, "topic required") {
		t.Error("expected error text in view")
	}
}

func TestSelectedPromptIsSent(t *testing.T) {
	c, ctrl := newTestChat(&stubSender{})

	_, cmd := c.Update(prompts.SelectedMsg{Text: "Teach me science."})
	if cmd == nil {
		t.Fatal("expected request command")
	}
	turns := ctrl.Turns()
	if got := turns[len(turns)-1].Content; got != (content.PlainText{Text: "Teach me science."}) {
		t.Errorf("unexpected user turn %#v", got)
	}
}

func TestCtrlPOpensPrompts(t *testing.T) {
	c, _ := newTestChat(&stubSender{})

	_, cmd := c.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if push.Screen.Title() != "Prompts" {
		t.Errorf("expected prompts screen, got %q", push.Screen.Title())
	}
}

func TestCtrlPIgnoredWhilePending(t *testing.T) {
	c, _ := newTestChat(&stubSender{})
	typeText(c, "hi")
	c.Update(specialKey(tea.KeyEnter))

	_, cmd := c.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	if cmd != nil {
		t.Error("expected picker to stay closed while pending")
	}
}

func TestViewShowsTranscriptAndThinking(t *testing.T) {
	c, _ := newTestChat(&stubSender{})

	view := c.View(100, 30)
	if !strings.Contains(view, "SolveWise") {
		t.Error("expected welcome message in view")
	}

	typeText(c, "explain cells")
	c.Update(specialKey(tea.KeyEnter))

	view = c.View(100, 30)
	if !strings.Contains(view, "explain cells") {
		t.Error("expected user message in view")
	}
	if !strings.Contains(view, thinkingText) {
		t.Error("expected thinking indicator while pending")
	}
}

func TestRenderTranscriptTimestamps(t *testing.T) {
	_, ctrl := newTestChat(&stubSender{})
	out := renderTranscript(ctrl.Turns(), 80)
	if !strings.Contains(out, ctrl.Turns()[0].DisplayTime()) {
		t.Error("expected timestamp in transcript")
	}
}

func TestHeaderDetailShowsTopic(t *testing.T) {
	c, _ := newTestChat(&stubSender{})
	if got := c.HeaderDetail(); got != "topic: math" {
		t.Errorf("unexpected header detail %q", got)
	}
}

func TestShiftEnterInsertsNewline(t *testing.T) {
	sender := &stubSender{reply: "ok"}
	c, ctrl := newTestChat(sender)

	scr := typeText(c, "line one")
	scr, _ = scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift})
	scr = typeText(scr, "line two")

	if ctrl.Pending() {
		t.Fatal("shift+enter must not send")
	}
	if got := c.input.Value(); got != "line one\nline two" {
		t.Fatalf("composer value = %q", got)
	}
	if c.input.Lines() != 2 {
		t.Errorf("composer lines = %d, want 2", c.input.Lines())
	}

	scr.Update(specialKey(tea.KeyEnter))
	turns := ctrl.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected welcome + user turn, got %d", len(turns))
	}
	if got := turns[1].Content; got != (content.PlainText{Text: "line one\nline two"}) {
		t.Errorf("user turn = %#v", got)
	}
	if c.input.Lines() != 1 {
		t.Errorf("composer should shrink back after send, got %d lines", c.input.Lines())
	}
}
