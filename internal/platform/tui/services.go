package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/registry"
	"github.com/vovakirdan/colormerge/internal/storage"
)

// Services are the collaborators shared by every game a TUI creates.
type Services struct {
	// Store keeps the run history and the persisted best scores. Nil keeps
	// records in memory only.
	Store *storage.Store

	Logger *log.Logger

	// Observers returns extra session observers for a game id, such as the
	// audio player or the event feed.
	Observers func(gameID string) []merge.Observer
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// Attach wires persistence, logging and observers into a merge game. It
// must run before the game's first Reset. Other games are left untouched.
func (s Services) Attach(game registry.Game) {
	g, ok := game.(*merge.Game)
	if !ok {
		return
	}

	logger := s.logger().With("game", g.ID())
	g.SetLogger(logger)
	if s.Store != nil {
		g.SetKeeper(s.Store.Keeper(g.ID(), logger))
	}
	if s.Observers != nil {
		for _, o := range s.Observers(g.ID()) {
			g.AddObserver(o)
		}
	}
}
