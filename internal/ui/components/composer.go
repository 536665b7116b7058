package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/solvewise/internal/ui/theme"
)

const (
	// MessageLimit caps a single chat message.
	MessageLimit = 2000
	// MaxComposerLines is how tall the composer grows before it scrolls.
	MaxComposerLines = 5
)

// Composer is the multi-line chat input. Enter is left to the caller (it
// sends); Shift+Enter, Alt+Enter and Ctrl+J insert a newline. While
// disabled it ignores keys and shows a status line instead.
type Composer struct {
	Model    textarea.Model
	disabled bool
	status   string
}

func NewComposer(placeholder string) Composer {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.CharLimit = MessageLimit
	ta.ShowLineNumbers = false
	ta.Prompt = "› "
	ta.MaxHeight = MaxComposerLines
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("shift+enter", "alt+enter", "ctrl+j"))
	ta.SetHeight(1)
	ta.Focus()

	return Composer{Model: ta}
}

func (c Composer) Init() tea.Cmd {
	return c.Model.Focus()
}

func (c Composer) Update(msg tea.Msg) (Composer, tea.Cmd) {
	if c.disabled {
		if _, ok := msg.(tea.KeyMsg); ok {
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	c.Model.SetHeight(c.Lines())
	return c, cmd
}

func (c Composer) View() string {
	if c.disabled {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(c.status)
	}
	return c.Model.View()
}

// Lines is the number of rows the composer occupies, between 1 and
// MaxComposerLines.
func (c Composer) Lines() int {
	if c.disabled {
		return 1
	}
	return min(max(c.Model.LineCount(), 1), MaxComposerLines)
}

func (c *Composer) SetWidth(w int) {
	c.Model.SetWidth(max(w, 1))
}

// Disable blocks key input and shows status in place of the field.
func (c *Composer) Disable(status string) {
	c.disabled = true
	c.status = status
	c.Model.Blur()
}

func (c *Composer) Enable() tea.Cmd {
	c.disabled = false
	c.status = ""
	return c.Model.Focus()
}

func (c Composer) Disabled() bool {
	return c.disabled
}

// SetStatus updates the status line shown while disabled.
func (c *Composer) SetStatus(status string) {
	c.status = status
}

// Value returns the message with surrounding blank space removed; inner
// newlines are kept.
func (c Composer) Value() string {
	return strings.TrimSpace(c.Model.Value())
}

func (c *Composer) Reset() {
	c.Model.Reset()
	c.Model.SetHeight(1)
}
