// Package screen defines the contract between the app frame and the screens
// it hosts.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/solvewise/internal/ui/layout"
)

// Screen is one full-body view managed by the router.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen body, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// DetailProvider is implemented by screens that show extra context on the
// right side of the header, such as the current topic.
type DetailProvider interface {
	HeaderDetail() string
}
