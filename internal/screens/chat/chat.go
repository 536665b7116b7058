// Package chat is the conversation screen: transcript, composer and the
// thinking indicator.
package chat

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/router"
	"github.com/abhisek/solvewise/internal/screen"
	"github.com/abhisek/solvewise/internal/screens/prompts"
	"github.com/abhisek/solvewise/internal/ui/components"
	"github.com/abhisek/solvewise/internal/ui/layout"
	"github.com/abhisek/solvewise/internal/ui/theme"
)

const thinkingText = "Thinking..."

// ChatScreen implements screen.Screen for the conversation.
type ChatScreen struct {
	ctrl     *conversation.Controller
	ctx      context.Context
	input    components.Composer
	spinner  spinner.Model
	viewport viewport.Model
	follow   bool
	notice   string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.DetailProvider = (*ChatScreen)(nil)

// New creates a ChatScreen driving ctrl. Requests run with ctx.
func New(ctx context.Context, ctrl *conversation.Controller) *ChatScreen {
	return &ChatScreen{
		ctrl:  ctrl,
		ctx:   ctx,
		input: components.NewComposer("Ask anything, e.g. teach me fractions"),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
		viewport: viewport.New(),
		follow:   true,
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chat"
}

func (s *ChatScreen) HeaderDetail() string {
	if topic := s.ctrl.Topic(); topic != "" {
		return "topic: " + topic
	}
	return ""
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	if s.ctrl.Pending() {
		return []layout.KeyHint{
			{Key: "PgUp/PgDn", Description: "Scroll"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Shift+Enter", Description: "New line"},
		{Key: "Ctrl+P", Description: "Prompts"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s.handleReply(msg)

	case prompts.SelectedMsg:
		return s, s.submit(msg.Text)

	case spinner.TickMsg:
		if !s.ctrl.Pending() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		s.input.SetStatus(s.spinner.View() + " " + thinkingText)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s, s.submit(s.input.Value())
	case "ctrl+p":
		if s.ctrl.Pending() {
			return s, nil
		}
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: prompts.New()} }
	case "pgup":
		s.viewport.PageUp()
		s.follow = s.viewport.AtBottom()
		return s, nil
	case "pgdown":
		s.viewport.PageDown()
		s.follow = s.viewport.AtBottom()
		return s, nil
	}

	s.notice = ""
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit starts a request for text. Blank text and submissions while a reply
// is outstanding are ignored.
func (s *ChatScreen) submit(text string) tea.Cmd {
	if _, err := s.ctrl.Begin(text); err != nil {
		if errors.Is(err, conversation.ErrRequestPending) {
			s.notice = "Please wait for the current reply."
		}
		return nil
	}

	s.notice = ""
	s.follow = true
	s.input.Reset()
	s.input.Disable(thinkingText)
	return tea.Batch(s.fetch(text), s.spinner.Tick)
}

// fetch runs the request off the UI goroutine. It only reads the controller's
// immutable request settings; the reply is applied in Update.
func (s *ChatScreen) fetch(text string) tea.Cmd {
	ctrl, ctx := s.ctrl, s.ctx
	return func() tea.Msg {
		return replyMsg{Content: ctrl.Fetch(ctx, text)}
	}
}

func (s *ChatScreen) handleReply(msg replyMsg) (screen.Screen, tea.Cmd) {
	s.ctrl.Complete(msg.Content)
	s.follow = true
	return s, s.input.Enable()
}
