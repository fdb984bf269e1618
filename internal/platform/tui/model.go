package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/registry"
)

// Terminal cells are converted to pixels before swipe decoding so the
// threshold means the same distance on both axes.
const (
	cellPixelW = 8
	cellPixelH = 16
)

// generational games tag their sessions so stale ticks can be dropped.
type generational interface {
	Generation() uint64
	TickGeneration(gen uint64, now time.Time) bool
}

// closer games are told when the player leaves them.
type closer interface {
	Close()
}

// resizable games adapt their layout without restarting.
type resizable interface {
	Resize(w, h int)
}

type pointer struct {
	x, y int
}

// swipeAction decodes a mouse drag between two cells into a move.
func swipeAction(from, to pointer) core.Action {
	dx := float64(to.x-from.x) * cellPixelW
	dy := float64(to.y-from.y) * cellPixelH
	return core.SwipeDirection(dx, dy, core.DefaultSwipeThreshold)
}

// Model is the Bubble Tea model for running one game. Inputs are applied
// the moment they arrive; ticks only redraw and run the deadline check.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	config     core.RuntimeConfig
	gameState  core.GameState
	keyMapper  *KeyMapper
	press      *pointer // Where the current mouse drag started
	embedded   bool     // Running inside a menu session; Esc goes back
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current game over has been recorded
	owner      uint64
}

// NewModel creates a new Bubble Tea model for the given game and attaches
// the services to it.
func NewModel(game registry.Game, svc Services, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	svc.Attach(game)

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		services:  svc,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		owner:     modelSeq.Add(1),
	}
}

// Init starts the game and its tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.owner, generationOf(m.game))
}

func generationOf(g registry.Game) uint64 {
	if t, ok := g.(generational); ok {
		return t.Generation()
	}
	return 0
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		m.leave()
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m.apply(action, m.config.Clock()())
}

func (m Model) leave() {
	if c, ok := m.game.(closer); ok {
		c.Close()
	}
}

// handleMouse turns a press-release drag into a swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.press = &pointer{x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		// Some terminals report releases without a button
		if m.press == nil {
			return m, nil
		}
		from := *m.press
		m.press = nil
		return m.apply(swipeAction(from, pointer{x: msg.X, y: msg.Y}), m.config.Clock()())
	}
	return m, nil
}

// apply steps the game with a single action stamped at the given time.
func (m Model) apply(action core.Action, at time.Time) (tea.Model, tea.Cmd) {
	if !action.IsDirection() && action != core.ActionRestart {
		return m, nil
	}

	before := generationOf(m.game)
	frame := core.NewInputFrameAt(at)
	frame.Set(action)
	m.gameState = m.game.Step(frame).State

	var cmd tea.Cmd
	if action == core.ActionRestart {
		m.runSaved = false
		if after := generationOf(m.game); after != before {
			// The old tick chain dies on its next tick
			cmd = tickCmd(m.config.TickRate, m.owner, after)
		}
	}

	m.recordRun()
	return m, cmd
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick runs the deadline check and schedules the next frame.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	// A game left for the menu can still have a tick in flight.
	if msg.Owner != 0 && msg.Owner != m.owner {
		return m, nil
	}
	if t, ok := m.game.(generational); ok {
		if msg.Gen != t.Generation() {
			return m, nil
		}
		t.TickGeneration(msg.Gen, msg.At)
		m.gameState = m.game.State()
	} else {
		m.gameState = m.game.Step(core.NewInputFrameAt(msg.At)).State
	}

	m.recordRun()
	return m, tickCmd(m.config.TickRate, m.owner, msg.Gen)
}

// recordRun saves a finished game to the run history once.
func (m *Model) recordRun() {
	if !m.gameState.GameOver || m.runSaved {
		return
	}
	m.runSaved = true

	if m.services.Store == nil || m.gameState.Score <= 0 {
		return
	}
	runID, err := m.services.Store.SaveRun(m.game.ID(), m.gameState.Score, m.gameState.EndReason)
	if err != nil {
		m.services.logger().Error("cannot save run", "game", m.game.ID(), "error", err)
		return
	}
	m.services.logger().Debug("run saved", "game", m.game.ID(), "run", runID, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".colormerge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.services.logger().Warn("cannot save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state observed after the last message.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewModel(game, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Press and release events drive swipes
	)

	_, err := p.Run()
	return err
}
