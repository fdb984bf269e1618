package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "test.log")
	opts := DefaultOptions()
	opts.Path = path
	opts.Level = "debug"

	logger, closer, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Debug("turn", "score", 42)
	logger.Info("session ended", "reason", "timed_out")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	out := string(data)
	for _, want := range []string{"colormerge", "turn", "score=42", "reason=timed_out"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestNewLevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	opts := DefaultOptions()
	opts.Path = path
	opts.Level = "warn"

	logger, closer, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	closer.Close()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Errorf("level filter wrong:\n%s", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Path = ""
	opts.Level = "loud"

	if _, _, err := New(opts); err == nil {
		t.Error("New() accepted an unknown level")
	}
}

func TestNewDiscard(t *testing.T) {
	opts := DefaultOptions()
	opts.Path = ""

	logger, closer, err := New(opts)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	logger.Error("nowhere")
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
