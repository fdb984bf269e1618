package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/colormerge/internal/audio"
	"github.com/vovakirdan/colormerge/internal/config"
	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/feed"
	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/logging"
	"github.com/vovakirdan/colormerge/internal/platform/tui"
	"github.com/vovakirdan/colormerge/internal/registry"
	"github.com/vovakirdan/colormerge/internal/storage"
)

// env holds the services shared by the interactive commands.
type env struct {
	logger    *log.Logger
	logCloser io.Closer
	store     *storage.Store
	speaker   *audio.Speaker
	hub       *feed.Hub
	feedSrv   *http.Server
}

// newEnv applies the global flags: logging, tuning, storage, sound and the
// event feed. Optional services that fail to start are logged and skipped.
func newEnv(logPath string, withStore, withSound bool) (*env, error) {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return nil, err
	}

	opts := logging.DefaultOptions()
	opts.Path = logPath
	opts.Level = flagLogLevel
	logger, closer, err := logging.New(opts)
	if err != nil {
		return nil, err
	}

	merge.SetConfigPath(flagConfig)
	merge.SetDifficultyPreset(flagDifficulty)

	e := &env{logger: logger, logCloser: closer}

	if withStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			logger.Warn("running without score storage", "db", flagDBPath, "error", err)
		} else {
			e.store = store
		}
	}

	if withSound && flagSound {
		sp := audio.NewSpeaker()
		if err := sp.Initialize(); err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			e.speaker = sp
		}
	}

	if flagFeed != "" {
		e.startFeed(flagFeed)
	}

	return e, nil
}

// startFeed serves the websocket event feed at /ws in the background.
func (e *env) startFeed(addr string) {
	e.hub = feed.NewHub(e.logger.With("component", "feed"))

	mux := http.NewServeMux()
	mux.Handle("/ws", e.hub)
	e.feedSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		e.logger.Info("event feed listening", "address", addr)
		if err := e.feedSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("event feed stopped", "error", err)
		}
	}()
}

// observers returns the session observers for a game id.
func (e *env) observers(gameID string) []merge.Observer {
	var obs []merge.Observer
	if e.speaker != nil {
		obs = append(obs, audio.NewObserver(e.speaker))
	}
	if e.hub != nil {
		obs = append(obs, e.hub.Observer(gameID))
	}
	return obs
}

func (e *env) services() tui.Services {
	return tui.Services{
		Store:     e.store,
		Logger:    e.logger,
		Observers: e.observers,
	}
}

// Close stops every service in reverse start order.
func (e *env) Close() {
	if e.feedSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		e.feedSrv.Shutdown(ctx) //nolint:errcheck
		cancel()
		e.hub.Close()
	}
	if e.speaker != nil {
		e.speaker.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	e.logCloser.Close() //nolint:errcheck
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// resolveGameID accepts a full id ("merge_timer") or a mode name ("timer").
func resolveGameID(arg string) (string, error) {
	arg = strings.ToLower(arg)
	for _, id := range []string{arg, "merge_" + arg} {
		if registry.Exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w %q", registry.ErrUnknownGame, arg)
}
