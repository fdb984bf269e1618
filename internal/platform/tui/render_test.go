package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/colormerge/internal/core"
)

func TestTileHex(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "#7375e8"},
		{2, "#9f61e5"},
		{9, "#30a71b"},
	}
	for _, tt := range tests {
		if got := tileHex(tt.level); got != tt.want {
			t.Errorf("tileHex(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestHSLHexPrimaries(t *testing.T) {
	tests := []struct {
		h    float64
		want string
	}{
		{0, "#ff0000"},
		{120, "#00ff00"},
		{240, "#0000ff"},
	}
	for _, tt := range tests {
		if got := hslHex(tt.h, 1, 0.5); got != tt.want {
			t.Errorf("hslHex(%v) = %s, want %s", tt.h, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "cd", core.TileLevelColor(3))
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("line 0 %q missing %q", lines[0], want)
		}
	}
	if !strings.Contains(lines[1], "ef    ") {
		t.Errorf("line 1 %q missing padded text", lines[1])
	}
}
