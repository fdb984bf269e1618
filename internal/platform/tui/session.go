package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/registry"
)

// SessionModel runs the menu and the chosen game inside one program, going
// back to the menu when the game is left. It backs every SSH connection.
type SessionModel struct {
	services Services
	config   core.RuntimeConfig
	menu     MenuModel
	game     *Model
	quitting bool
}

// NewSessionModel starts a session on the menu.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		services: svc,
		config:   cfg,
		menu:     NewMenuModel(svc.Store, cfg),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}
	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) reopenMenu() SessionModel {
	m.game = nil
	m.menu = NewMenuModel(m.services.Store, m.config)
	return m
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks from a finished game's chain stop here.
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}

	// The menu's commands only quit its standalone program, so they are dropped.
	next, _ := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.menu.WantsScoreboard():
		// No scoreboard over SSH; the menu already lists bests.
		return m.reopenMenu(), nil
	case m.menu.Selected() == nil:
		return m, nil
	}

	id := m.menu.Selected().GameID
	game, err := registry.Create(id)
	if err != nil {
		m.services.logger().Error("cannot create game", "game", id, "error", err)
		return m.reopenMenu(), nil
	}

	m.config = m.menu.Config()
	m.config.Seed = time.Now().UnixNano()

	gm := NewModel(game, m.services, m.config)
	gm.embedded = true
	m.game = &gm
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.BackToMenu():
		m = m.reopenMenu()
		return m, m.menu.Init()
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	}
	return m.menu.View()
}
