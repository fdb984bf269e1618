// Package tui provides the Bubble Tea integration for colormerge.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a redraw and a deadline check. Gen is the game
// generation the tick was scheduled under; ticks from an older generation
// are dropped so a restart never inherits the previous session's timer.
// Owner names the model that scheduled it; zero matches any model.
type TickMsg struct {
	Owner uint64
	Gen   uint64
	At    time.Time
}

var modelSeq atomic.Uint64

// tickCmd returns a Bubble Tea command that sends one tick after a frame.
func tickCmd(tickRate int, owner, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Owner: owner, Gen: gen, At: t}
	})
}
