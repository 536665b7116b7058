// Package prompts is the picker for subjects and ready-made questions.
package prompts

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/router"
	"github.com/abhisek/solvewise/internal/screen"
	"github.com/abhisek/solvewise/internal/ui/components"
	"github.com/abhisek/solvewise/internal/ui/layout"
	"github.com/abhisek/solvewise/internal/ui/theme"
)

// SelectedMsg carries the message text the user picked.
type SelectedMsg struct {
	Text string
}

// PromptsScreen lists subjects and quick prompts.
type PromptsScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*PromptsScreen)(nil)
var _ screen.KeyHintProvider = (*PromptsScreen)(nil)

// New creates the picker.
func New() *PromptsScreen {
	items := []components.MenuItem{components.Heading("Subjects")}
	for _, s := range conversation.Subjects {
		items = append(items, components.MenuItem{
			Label:  s,
			Action: choose(conversation.SubjectPrompt(s)),
		})
	}
	items = append(items, components.Heading("Quick prompts"))
	for _, p := range conversation.QuickPrompts {
		items = append(items, components.MenuItem{
			Label:  p,
			Action: choose(p),
		})
	}
	return &PromptsScreen{menu: components.NewMenu(items)}
}

// choose closes the picker and hands text to the screen below.
func choose(text string) func() tea.Cmd {
	return func() tea.Cmd {
		return tea.Sequence(
			func() tea.Msg { return router.PopScreenMsg{} },
			func() tea.Msg { return SelectedMsg{Text: text} },
		)
	}
}

func (p *PromptsScreen) Init() tea.Cmd {
	return nil
}

func (p *PromptsScreen) Title() string {
	return "Prompts"
}

func (p *PromptsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PromptsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PromptsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("What would you like to learn?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Pick a subject or a ready-made question."))
	b.WriteString("\n\n")
	b.WriteString(p.menu.View())

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(b.String())
}

// Selected returns the label of the highlighted item.
func (p *PromptsScreen) Selected() string {
	return p.menu.Items[p.menu.Selected].Label
}
