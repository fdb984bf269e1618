package core

import "time"

// Action is a semantic input, independent of the key or gesture behind it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionBack
	ActionRestart
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// IsDirection reports whether the action is one of the four move directions.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame is what a game receives in one Step. Inputs are delivered the
// moment they arrive; ticks deliver an empty frame so time-driven rules run.
type InputFrame struct {
	set uint32

	// At is when the input happened. Zero means the game reads its own clock.
	At time.Time
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// NewInputFrameAt returns an empty frame stamped with at.
func NewInputFrameAt(at time.Time) InputFrame {
	return InputFrame{At: at}
}

// Set marks a as triggered. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && int(a) < len(actionNames) {
		f.set |= 1 << uint(a)
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && f.set&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.set == 0
}

// Clear drops every action and the timestamp.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}
