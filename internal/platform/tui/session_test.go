package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionMenuGameMenu(t *testing.T) {
	m := NewSessionModel(Services{}, testConfig(&fakeClock{now: t0}))

	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("enter did not start a game")
	}
	if cmd == nil {
		t.Error("starting a game returned no tick command")
	}
	if !m.game.embedded {
		t.Error("session game is not embedded")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.game != nil {
		t.Fatal("esc did not return to the menu")
	}
	if m.quitting {
		t.Fatal("esc ended the session")
	}

	m, cmd = sessionUpdate(t, m, TickMsg{Gen: 1, At: t0})
	if cmd != nil {
		t.Error("stale tick produced a command on the menu")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.menu.WantsScoreboard() {
		t.Error("scoreboard request was not reset")
	}

	m, cmd = sessionUpdate(t, m, runeKey('q'))
	if !m.quitting || cmd == nil {
		t.Error("q did not end the session")
	}
	if m.View() != "" {
		t.Error("quitting session still renders")
	}
}

func TestSessionDropsPreviousGameTicks(t *testing.T) {
	m := NewSessionModel(Services{}, testConfig(&fakeClock{now: t0}))

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	stale := TickMsg{Owner: m.game.owner, Gen: 1, At: t0}
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.game == nil {
		t.Fatal("enter did not start a second game")
	}

	if _, cmd := sessionUpdate(t, m, stale); cmd != nil {
		t.Error("tick from the first game kept a chain alive in the second")
	}
	if _, cmd := sessionUpdate(t, m, TickMsg{Owner: m.game.owner, Gen: 1, At: t0}); cmd == nil {
		t.Error("own tick did not schedule the next frame")
	}
}

func TestSessionTracksResize(t *testing.T) {
	m := NewSessionModel(Services{}, testConfig(&fakeClock{now: t0}))
	m, _ = sessionUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if m.config.ScreenW != 100 || m.config.ScreenH != 40 {
		t.Errorf("config size = %dx%d", m.config.ScreenW, m.config.ScreenH)
	}
	if m.menu.width != 100 {
		t.Errorf("menu width = %d", m.menu.width)
	}
}
