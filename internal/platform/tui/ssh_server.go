package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// SSHServerConfig configures the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on.
	Address string

	// HostKeyPath is generated on first start when missing.
	// Empty means ~/.colormerge/host_key.
	HostKeyPath string

	// Store is shared by every session. When nil the server opens DBPath
	// and closes it on shutdown.
	Store  *storage.Store
	DBPath string

	IdleTimeout time.Duration
	TickRate    int

	// Logger receives server and game logs. Nil logs to stderr.
	Logger *log.Logger

	// Observers returns extra session observers for each game started.
	Observers func(gameID string) []merge.Observer
}

// DefaultSSHServerConfig returns the default listen address and timeouts.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.colormerge/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves a menu and game per connection over Wish. All users
// share one score store.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store
	ownsStore bool
	logger    *log.Logger
	sessions  atomic.Int64
}

// NewSSHServer prepares the host key and the Wish middleware stack.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "colormerge-ssh",
		})
	}

	hostKey, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{config: cfg, store: cfg.Store, logger: cfg.Logger}
	if s.store == nil {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			s.logger.Warn("serving without score storage", "db", cfg.DBPath, "error", err)
		} else {
			s.store, s.ownsStore = store, true
		}
	}

	// Middleware runs last to first.
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.trackSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".colormerge", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	svc := Services{
		Store:     s.store,
		Logger:    s.logger.With("user", sess.User()),
		Observers: s.config.Observers,
	}
	return NewSessionModel(svc, cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// trackSession logs connections and keeps the active session count.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

		logger.Info("session started", "active", s.sessions.Add(1))
		defer func() {
			logger.Info("session ended", "active", s.sessions.Add(-1), "duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// Sessions returns the number of connected sessions.
func (s *SSHServer) Sessions() int {
	return int(s.sessions.Load())
}

// Serve listens until ctx is done or the listener fails, then shuts down.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutting down", "sessions", s.Sessions())
	case serveErr = <-errc:
	}

	if err := s.Shutdown(); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

// Shutdown stops accepting connections and waits for sessions to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.ownsStore {
		s.store.Close()
		s.ownsStore = false
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
