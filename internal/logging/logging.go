// Package logging builds the charmbracelet/log loggers used across the
// program. The TUI owns the terminal, so play sessions log to a rolling file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultPath is where logs go when no path is given.
const DefaultPath = "~/.colormerge/colormerge.log"

// Options configures a logger.
type Options struct {
	Path       string // Log file; "-" writes to stderr, "" discards
	Level      string // debug, info, warn, error
	Prefix     string
	MaxSizeMB  int
	MaxBackups int
}

// DefaultOptions returns options for the default rolling log file.
func DefaultOptions() Options {
	return Options{
		Path:       DefaultPath,
		Level:      "info",
		Prefix:     "colormerge",
		MaxSizeMB:  5,
		MaxBackups: 3,
	}
}

// New creates a logger from opts. The returned closer flushes and closes the
// log file and must be called on exit.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: %w", err)
	}

	w, closer, err := writerFor(opts)
	if err != nil {
		return nil, nil, err
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func writerFor(opts Options) (io.Writer, io.Closer, error) {
	switch opts.Path {
	case "":
		return io.Discard, nopCloser{}, nil
	case "-":
		return os.Stderr, nopCloser{}, nil
	}

	path, err := expandHome(opts.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	return lj, lj, nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
