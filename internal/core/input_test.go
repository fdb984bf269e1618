package core

import (
	"testing"
	"time"
)

func TestInputFrameAt(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := NewInputFrameAt(at)
	f.Set(ActionNone)
	if !f.Empty() {
		t.Error("ActionNone made the frame non-empty")
	}

	f.Set(ActionRestart)
	f.Set(ActionUp)
	if !f.Has(ActionRestart) || !f.Has(ActionUp) || f.Has(ActionDown) {
		t.Error("Has() reports wrong actions")
	}

	f.Clear()
	if !f.At.IsZero() {
		t.Error("Clear kept the timestamp")
	}
}

func TestActionNames(t *testing.T) {
	tests := []struct {
		a    Action
		want string
		dir  bool
	}{
		{ActionNone, "None", false},
		{ActionUp, "Up", true},
		{ActionRight, "Right", true},
		{ActionBack, "Back", false},
		{ActionQuit, "Quit", false},
		{Action(42), "Unknown", false},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
		if got := tt.a.IsDirection(); got != tt.dir {
			t.Errorf("%s.IsDirection() = %v, want %v", tt.want, got, tt.dir)
		}
	}
}
