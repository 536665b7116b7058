package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/solvewise/internal/content"
	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/render"
	"github.com/abhisek/solvewise/internal/ui/layout"
	"github.com/abhisek/solvewise/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	// The composer adds a border row above and below its lines.
	composerHeight := s.input.Lines() + 2
	transcriptHeight := max(height-composerHeight-1, 1)

	s.viewport.SetWidth(width)
	s.viewport.SetHeight(transcriptHeight)
	s.viewport.SetContent(renderTranscript(s.ctrl.Turns(), width))
	if s.follow {
		s.viewport.GotoBottom()
	}

	s.input.SetWidth(width - 4)
	composer := lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(s.input.View())

	status := ""
	if s.notice != "" {
		status = theme.Hint.Render(s.notice)
	}

	return s.viewport.View() + "\n" + status + "\n" + composer
}

// renderTranscript lays out every turn as a bubble: user turns on the right,
// assistant turns on the left, each followed by its timestamp.
func renderTranscript(turns []conversation.Turn, width int) string {
	bubbleWidth := layout.BubbleWidth(width)
	blocks := make([]string, 0, len(turns))
	for _, t := range turns {
		blocks = append(blocks, renderTurn(t, width, bubbleWidth))
	}
	return strings.Join(blocks, "\n\n")
}

func renderTurn(t conversation.Turn, width, bubbleWidth int) string {
	// Bubble styles add a border and horizontal padding.
	inner := bubbleWidth - 4

	body := render.Content(t.Content, render.Options{Width: inner, Styled: true})
	stamp := theme.Timestamp.Render(t.DisplayTime())

	var bubble string
	switch {
	case t.IsUser():
		bubble = theme.UserBubble.Render(render.Content(t.Content, render.Options{Width: inner}))
	case content.KindOf(t.Content) == content.KindError:
		bubble = theme.ErrorBubble.Render(body)
	default:
		bubble = theme.AssistantBubble.Render(body)
	}

	block := lipgloss.JoinVertical(lipgloss.Left, bubble, stamp)
	if t.IsUser() {
		block = lipgloss.JoinVertical(lipgloss.Right, bubble, stamp)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}
