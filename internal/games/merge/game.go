package merge

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormerge/internal/config"
	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/registry"
)

// Variant selects the scoring strategy.
type Variant string

const (
	VariantRhythm Variant = "rhythm"
	VariantTimer  Variant = "timer"
)

// Registry identifiers of the two variants.
const (
	IDRhythm = "merge_rhythm"
	IDTimer  = "merge_timer"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values fall back
// to the loaded config.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	variant Variant
	cfg     config.MergeConfig
	session *Session

	keeper    ScoreKeeper
	logger    *log.Logger
	observers []Observer
	now       func() time.Time

	screenW  int
	screenH  int
	tooSmall bool
	hiddenAt time.Time // when the board was last hidden by a small screen

	anim *turnAnimation
}

// New creates a game for the given variant.
func New(variant Variant) *Game {
	return &Game{
		variant: variant,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
}

// NewRhythm creates the rhythm variant.
func NewRhythm() *Game {
	return New(VariantRhythm)
}

// NewTimer creates the timer variant.
func NewTimer() *Game {
	return New(VariantTimer)
}

func init() {
	registry.Register(IDRhythm, func() registry.Game {
		return NewRhythm()
	})
	registry.Register(IDTimer, func() registry.Game {
		return NewTimer()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantTimer {
		return IDTimer
	}
	return IDRhythm
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantTimer {
		return "Color Merge (Timer)"
	}
	return "Color Merge (Rhythm)"
}

// SetKeeper sets where best scores and leaderboards persist. Must be called
// before the first Reset.
func (g *Game) SetKeeper(k ScoreKeeper) {
	g.keeper = k
}

// SetLogger sets the game logger.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// AddObserver registers a session observer.
func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
	if g.session != nil {
		g.session.AddObserver(o)
	}
}

// Session returns the underlying session, nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the tuning in effect.
func (g *Game) Config() config.MergeConfig {
	return g.cfg
}

// Reset initializes or restarts the game. The session object survives
// restarts so its generation counter keeps increasing.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.now = rc.Clock()
	g.Resize(rc.ScreenW, rc.ScreenH)
	g.anim = nil

	if g.session == nil {
		g.cfg = g.loadConfig()
		g.session = NewSession(SessionConfig{
			Strategy:  g.newStrategy(),
			Keeper:    g.keeper,
			Seed:      rc.Seed,
			Logger:    g.logger,
			Observers: g.observers,
		})
	} else {
		g.session.Reseed(rc.Seed)
	}

	g.session.Reset(g.now())
	g.hiddenAt = time.Time{}
	if g.tooSmall {
		g.hiddenAt = g.now()
	}
	g.publish()
}

// loadConfig loads tuning with the difficulty preset applied, falling back
// to defaults when the config is unusable.
func (g *Game) loadConfig() config.MergeConfig {
	cfg, err := config.LoadMerge(configPath)
	if err != nil {
		g.logger.Warn("using default merge config", "error", err)
		cfg = config.DefaultMergeConfig()
	}
	config.ApplyMergePreset(&cfg, difficultyPreset)
	return cfg
}

func (g *Game) newStrategy() Strategy {
	if g.variant == VariantTimer {
		return NewTimerStrategy(g.cfg.Timer)
	}
	return NewRhythmStrategy(g.cfg.Rhythm)
}

// Resize adapts the layout to a new screen size without restarting. The
// turn clock stands still while the screen is too small to show the board.
func (g *Game) Resize(w, h int) {
	small := w < minScreenW || h < minScreenH
	switch {
	case small && !g.tooSmall:
		g.hiddenAt = g.now()
	case !small && g.tooSmall:
		if g.session != nil && !g.hiddenAt.IsZero() {
			g.session.Hold(g.now().Sub(g.hiddenAt))
		}
		g.hiddenAt = time.Time{}
	}

	g.screenW = w
	g.screenH = h
	g.tooSmall = small
}

// Step applies one input frame. A directional action is played as a turn
// at the frame's timestamp; an empty frame runs the deadline check.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	now := in.At
	if now.IsZero() {
		now = g.now()
	}

	if in.Has(core.ActionRestart) {
		g.anim = nil
		g.session.Reset(now)
		if g.tooSmall {
			g.hiddenAt = now
		}
		g.publish()
		return core.StepResult{State: g.State()}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok {
		if g.session.Tick(now) {
			g.publish()
		}
		return core.StepResult{State: g.State()}
	}

	wasOver := g.session.State().Terminal()
	ev, accepted := g.session.ApplyInput(dir, now)
	if accepted {
		g.anim = newTurnAnimation(ev, now)
	}
	// A late input can end the game without playing a turn.
	if accepted || (!wasOver && g.session.State().Terminal()) {
		g.publish()
	}
	return core.StepResult{State: g.State(), Accepted: accepted}
}

// TickGeneration runs the deadline check for a tick scheduled under gen.
// Ticks from before the latest restart are dropped.
func (g *Game) TickGeneration(gen uint64, now time.Time) bool {
	if g.session == nil || gen != g.session.Generation() || g.tooSmall {
		return false
	}
	if !g.session.Tick(now) {
		return false
	}
	g.publish()
	return true
}

// Generation returns the session generation, 0 before the first Reset.
func (g *Game) Generation() uint64 {
	if g.session == nil {
		return 0
	}
	return g.session.Generation()
}

// directionFor picks the first directional action in the frame.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:     g.session.Score(),
		BestScore: g.session.Best(),
		GameOver:  g.session.State().Terminal(),
		Paused:    g.tooSmall,
	}
	if st.GameOver {
		st.EndReason = string(g.session.State())
	}
	return st
}
