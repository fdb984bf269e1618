package core

// DefaultSwipeThreshold is the minimum displacement, in device-independent
// pixels along the dominant axis, that counts as a swipe.
const DefaultSwipeThreshold = 30

// SwipeDirection decodes a drag gesture into a directional action.
// dx and dy are the release position minus the press position (y grows down).
// Gestures shorter than threshold on their dominant axis return ActionNone.
// Ties between the axes resolve to the vertical axis.
func SwipeDirection(dx, dy, threshold float64) Action {
	absX, absY := dx, dy
	if absX < 0 {
		absX = -absX
	}
	if absY < 0 {
		absY = -absY
	}

	if max(absX, absY) < threshold {
		return ActionNone
	}

	if absX > absY {
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}
	if dy > 0 {
		return ActionDown
	}
	return ActionUp
}
