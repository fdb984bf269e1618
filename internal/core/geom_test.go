package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 9, 25, 7)

	if r.Right() != 27 {
		t.Errorf("Right() = %d, want 27", r.Right())
	}
	if r.Bottom() != 16 {
		t.Errorf("Bottom() = %d, want 16", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		n    int
		want Rect
	}{
		{"border", NewRect(2, 9, 25, 7), 1, NewRect(3, 10, 23, 5)},
		{"zero", NewRect(2, 9, 25, 7), 0, NewRect(2, 9, 25, 7)},
		{"collapses", NewRect(0, 0, 3, 1), 1, NewRect(1, 1, 1, 0)},
		{"never negative", NewRect(0, 0, 2, 2), 3, NewRect(3, 3, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Inset(tt.n); got != tt.want {
				t.Errorf("Inset(%d) = %+v, want %+v", tt.n, got, tt.want)
			}
		})
	}
}
