package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/storage"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func testConfig(clock *fakeClock) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	cfg.Now = clock.Now
	return cfg
}

// stubGame is a game without generations, ending with a fixed result.
type stubGame struct {
	state  core.GameState
	resets int
	steps  int
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return g.state }

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestSwipeAction(t *testing.T) {
	tests := []struct {
		name     string
		from, to pointer
		want     core.Action
	}{
		{"right", pointer{10, 10}, pointer{14, 10}, core.ActionRight},
		{"left", pointer{10, 10}, pointer{6, 10}, core.ActionLeft},
		{"down", pointer{10, 10}, pointer{10, 12}, core.ActionDown},
		{"up", pointer{10, 10}, pointer{10, 8}, core.ActionUp},
		{"too short", pointer{10, 10}, pointer{13, 10}, core.ActionNone},
		{"click", pointer{10, 10}, pointer{10, 10}, core.ActionNone},
		// 4 cells across is 32px, 2 rows down is 32px
		{"tie goes vertical", pointer{10, 10}, pointer{14, 12}, core.ActionDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := swipeAction(tt.from, tt.to); got != tt.want {
				t.Errorf("swipeAction = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStaleTicksDropped(t *testing.T) {
	clock := &fakeClock{now: t0}
	game := merge.NewRhythm()
	m := NewModel(game, Services{}, testConfig(clock))
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init returned no tick command")
	}
	gen := game.Generation()

	_, cmd := update(t, m, TickMsg{Gen: gen + 1, At: t0})
	if cmd != nil {
		t.Error("tick from another generation rescheduled")
	}

	_, cmd = update(t, m, TickMsg{Gen: gen, At: t0})
	if cmd == nil {
		t.Error("current tick did not reschedule")
	}
}

func TestRestartStartsNewTickChain(t *testing.T) {
	clock := &fakeClock{now: t0}
	game := merge.NewRhythm()
	m := NewModel(game, Services{}, testConfig(clock))
	m.Init()
	gen := game.Generation()

	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil {
		t.Fatal("restart did not start a tick chain")
	}
	if game.Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", game.Generation(), gen+1)
	}

	_, cmd = update(t, m, TickMsg{Gen: gen, At: t0})
	if cmd != nil {
		t.Error("tick from before the restart kept running")
	}
}

func TestTimerExpiresOnTick(t *testing.T) {
	clock := &fakeClock{now: t0}
	game := merge.NewTimer()
	m := NewModel(game, Services{}, testConfig(clock))
	m.Init()

	limit := game.Config().Timer.Limit()
	m, _ = update(t, m, TickMsg{Gen: game.Generation(), At: t0.Add(limit + time.Millisecond)})

	st := m.GameState()
	if !st.GameOver || st.EndReason != string(merge.StateTimedOut) {
		t.Errorf("state = %+v, want timed out", st)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	clock := &fakeClock{now: t0}
	game := merge.NewRhythm()
	m := NewModel(game, Services{}, testConfig(clock))
	m.Init()
	gen := game.Generation()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if game.Generation() != gen {
		t.Error("resize restarted the session")
	}
	if !game.State().Paused {
		t.Error("tiny window not reported as paused")
	}

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.State().Paused {
		t.Error("large window still paused")
	}
}

func TestEscAndQuit(t *testing.T) {
	clock := &fakeClock{now: t0}

	m := NewModel(merge.NewRhythm(), Services{}, testConfig(clock))
	m.Init()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	standalone, _ := update(t, m, esc)
	if !standalone.IsQuitting() {
		t.Error("esc did not quit a standalone game")
	}

	m.embedded = true
	embedded, _ := update(t, m, esc)
	if !embedded.BackToMenu() || embedded.IsQuitting() {
		t.Error("esc inside a session did not go back to the menu")
	}

	quit, _ := update(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q did not quit")
	}
}

// closeRecorder counts how often a game is left.
type closeRecorder struct {
	merge.ObserverFuncs
	closed int
}

func (r *closeRecorder) StateChanged(merge.Snapshot) {}
func (r *closeRecorder) GameClosed()                 { r.closed++ }

func TestLeavingClosesGame(t *testing.T) {
	tests := []struct {
		name     string
		embedded bool
		key      tea.KeyMsg
	}{
		{"esc standalone", false, tea.KeyMsg{Type: tea.KeyEsc}},
		{"esc in session", true, tea.KeyMsg{Type: tea.KeyEsc}},
		{"quit", false, runeKey('q')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := merge.NewRhythm()
			rec := &closeRecorder{}
			game.AddObserver(rec)

			m := NewModel(game, Services{}, testConfig(&fakeClock{now: t0}))
			m.embedded = tt.embedded
			m.Init()

			update(t, m, runeKey('x'))
			if rec.closed != 0 {
				t.Fatal("unbound key closed the game")
			}
			update(t, m, tt.key)
			if rec.closed != 1 {
				t.Errorf("GameClosed calls = %d, want 1", rec.closed)
			}
		})
	}
}

func TestRunRecordedOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	game := &stubGame{state: core.GameState{
		Score:     50,
		GameOver:  true,
		EndReason: string(merge.StateBoardLocked),
	}}
	m := NewModel(game, Services{Store: store}, testConfig(&fakeClock{now: t0}))
	m.Init()

	m, _ = update(t, m, TickMsg{At: t0})
	update(t, m, TickMsg{At: t0})

	if game.steps != 2 {
		t.Errorf("steps = %d, want 2", game.steps)
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs))
	}
	if runs[0].Score != 50 || runs[0].Reason != string(merge.StateBoardLocked) {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestResizeResetsPlainGames(t *testing.T) {
	game := &stubGame{}
	m := NewModel(game, Services{}, testConfig(&fakeClock{now: t0}))
	m.Init()

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
}
