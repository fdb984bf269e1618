package core

import "time"

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW, ScreenH int // terminal cells
	TickRate         int // redraws per second
	Seed             int64

	// Now is the clock timing rules read. Nil means time.Now.
	Now func() time.Time
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second. A zero Seed
// lets the platform pick one from the clock.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// Clock returns Now, or time.Now when unset.
func (c RuntimeConfig) Clock() func() time.Time {
	if c.Now == nil {
		return time.Now
	}
	return c.Now
}

// GameState is the summary the platform reads after each step.
type GameState struct {
	Score     int
	BestScore int
	GameOver  bool
	Paused    bool   // the view is suspended, e.g. the terminal is too small
	EndReason string // terminal state name, empty while playing
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState

	// Accepted is true when the step consumed a directional input as a turn.
	Accepted bool
}
