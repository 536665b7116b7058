package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/router"
	"github.com/abhisek/solvewise/internal/screens/prompts"
	"github.com/abhisek/solvewise/internal/tutorapi"
)

type nopSender struct{}

func (nopSender) Send(context.Context, string, tutorapi.RequestContext) (any, error) {
	return "ok", nil
}

func newTestModel() AppModel {
	ctrl := conversation.NewController(nopSender{}, conversation.Options{Topic: "physics"})
	return newAppModel(context.Background(), Options{Controller: ctrl})
}

func resize(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestFrameShowsHeaderAndChat(t *testing.T) {
	m := resize(newTestModel(), 100, 30)

	frame := m.frame()
	for _, want := range []string{"SolveWise", "Chat", "topic: physics", "Ctrl+P"} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestFrameTooSmall(t *testing.T) {
	m := resize(newTestModel(), 40, 10)
	if !strings.Contains(m.frame(), "Terminal too small") {
		t.Error("expected size warning")
	}
}

func TestEscPopsOverlayOnly(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Push(prompts.New())
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestRunRequiresController(t *testing.T) {
	if err := Run(context.Background(), Options{}); err == nil {
		t.Error("expected error without controller")
	}
}
