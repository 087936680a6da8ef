package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/core"
)

func newTestSession() SessionModel {
	return NewSessionModel(SessionOptions{
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 40, TickRate: 60, Seed: 7},
		Arena:   config.DefaultArenaConfig(),
		Theme:   DefaultTheme(),
		Source:  "ssh",
	})
}

func sessionStep(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionMenuToArenaAndBack(t *testing.T) {
	m := newTestSession()

	m, cmd := sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenArena {
		t.Fatalf("screen = %v, want arena", m.screen)
	}
	if cmd == nil {
		t.Error("entering the arena should start the tick loop")
	}
	if !strings.Contains(m.View(), "PRESS SPACE TO START") {
		t.Error("arena view should be shown")
	}

	m, _ = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu after back", m.screen)
	}
	if m.quitting {
		t.Error("back must not end the session")
	}
}

func TestSessionHistoryWithoutStore(t *testing.T) {
	m := newTestSession()

	m, _ = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("screen = %v, want history", m.screen)
	}
	if !strings.Contains(m.View(), "History is unavailable") {
		t.Error("history without a store should say it is unavailable")
	}

	m, _ = sessionStep(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newTestSession()

	m, cmd := sessionStep(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Fatal("q in the menu should quit the session")
	}
	if m.View() != "" {
		t.Error("a quitting session renders nothing")
	}
}

func TestSessionResizeReachesArena(t *testing.T) {
	m := newTestSession()

	m, _ = sessionStep(t, m, tea.WindowSizeMsg{Width: 60, Height: 30})
	m, _ = sessionStep(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	want := m.opts.Arena.Viewport.Fit(arenaCells(60, 30))
	if got := m.arena.Layout(); got != want {
		t.Errorf("arena layout = %+v, want %+v", got, want)
	}
}
