package merge

import "time"

// Animation timings. Steps are event driven, so animations run on wall time
// rather than tick counts.
const (
	slideDuration = 120 * time.Millisecond
	popDuration   = 100 * time.Millisecond
	popupDuration = 650 * time.Millisecond
	popupStagger  = 45 * time.Millisecond
)

// AnimationPhase represents the current phase of a turn animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation is one tile sliding from its source cell to its destination.
type TileAnimation struct {
	ID     int
	Level  int // Level shown while sliding
	From   Coord
	To     Coord
	Merged bool
}

// ScorePopup is a "+points" label floating over a merge cell.
type ScorePopup struct {
	At     Coord
	Points int
	Delay  time.Duration
}

// turnAnimation animates one accepted turn: slide, then spawn pop, with merge
// popups running alongside.
type turnAnimation struct {
	start   time.Time
	tiles   []TileAnimation
	spawned *TileAnimation
	popups  []ScorePopup
}

// newTurnAnimation builds the animation for ev starting at now.
func newTurnAnimation(ev TurnEvent, now time.Time) *turnAnimation {
	a := &turnAnimation{start: now}

	merged := make(map[int]bool, len(ev.MergedIDs))
	for _, id := range ev.MergedIDs {
		merged[id] = true
	}

	for id, m := range ev.Motions {
		level := ev.Board[m.To.Row][m.To.Col].Level
		if merged[id] {
			level-- // slide the pre-merge value, then reveal the result
		}
		a.tiles = append(a.tiles, TileAnimation{
			ID:     id,
			Level:  level,
			From:   m.From,
			To:     m.To,
			Merged: merged[id],
		})
	}

	if ev.SpawnedID != 0 {
		a.spawned = &TileAnimation{
			ID:    ev.SpawnedID,
			Level: ev.SpawnedLevel,
			From:  ev.SpawnedAt,
			To:    ev.SpawnedAt,
		}
	}

	for i, e := range ev.MergeEvents {
		a.popups = append(a.popups, ScorePopup{
			At:     Coord{Row: e.Row, Col: e.Col},
			Points: e.Points,
			Delay:  time.Duration(i) * popupStagger,
		})
	}
	return a
}

// Phase returns the animation phase at now.
func (a *turnAnimation) Phase(now time.Time) AnimationPhase {
	if a == nil {
		return PhaseNone
	}
	elapsed := now.Sub(a.start)
	switch {
	case elapsed < slideDuration:
		return PhaseSlide
	case a.spawned != nil && elapsed < slideDuration+popDuration:
		return PhasePop
	default:
		return PhaseNone
	}
}

// SlideProgress returns the slide completion at now in [0, 1].
func (a *turnAnimation) SlideProgress(now time.Time) float64 {
	return clampF(float64(now.Sub(a.start))/float64(slideDuration), 0, 1)
}

// ActivePopups returns the popups visible at now.
func (a *turnAnimation) ActivePopups(now time.Time) []ScorePopup {
	if a == nil {
		return nil
	}
	elapsed := now.Sub(a.start)
	var out []ScorePopup
	for _, p := range a.popups {
		if elapsed >= p.Delay && elapsed < p.Delay+popupDuration {
			out = append(out, p)
		}
	}
	return out
}

// Done reports whether nothing is left to animate at now.
func (a *turnAnimation) Done(now time.Time) bool {
	if a == nil {
		return true
	}
	end := slideDuration + popDuration
	if n := len(a.popups); n > 0 {
		end = max(end, a.popups[n-1].Delay+popupDuration)
	}
	return now.Sub(a.start) >= end
}

// lerp interpolates between two grid positions.
func lerp(from, to int, t float64) int {
	return from + int(float64(to-from)*t+0.5)
}
