package merge

import (
	"math"
	"time"
)

// BonusMode tells how a strategy's modifier combines with the merge score.
type BonusMode int

const (
	// BonusScale multiplies the merge score (rhythm variant).
	BonusScale BonusMode = iota
	// BonusFlat adds a flat amount to the merge score (timer variant).
	BonusFlat
)

// TurnContext is what a strategy sees of an accepted turn.
type TurnContext struct {
	Now    time.Time
	Gained int // Raw merge score of the turn
}

// Bonus is the scoring outcome of one accepted turn.
type Bonus struct {
	Mode       BonusMode
	Multiplier float64    // Scale factor (rhythm) or remaining-time multiplier (timer)
	Flat       int        // Flat points added (timer only)
	TurnScore  int        // Final points credited for the turn
	Judgement  *Judgement // Timing judgement (rhythm only)
	Depleted   bool       // Health reached zero on this turn
}

// ScalePoints applies the bonus to a single merge's points, for popups.
// Flat bonuses are credited once per turn, so per-merge points stay raw.
func (b Bonus) ScalePoints(points int) int {
	if b.Mode != BonusScale {
		return points
	}
	return int(math.Floor(float64(points) * b.Multiplier))
}

// Meter is a read-only view of a strategy's HUD state.
type Meter struct {
	Variant    string
	Multiplier float64

	// Rhythm
	Health    int
	MaxHealth int
	Combo     int
	BeatIndex int
	LastGrade Grade
	GradeAt   time.Time

	// Timer
	Remaining time.Duration
	Limit     time.Duration
}

// Strategy is a scoring variant. A session uses exactly one strategy for its
// whole life; the variant is chosen when the game is created.
// holder is implemented by strategies whose clock can be stopped while the
// board is hidden.
type holder interface {
	Hold(d time.Duration)
}

type Strategy interface {
	// Name returns the variant identifier ("rhythm", "timer").
	Name() string

	// Reset restores the initial meters with the session starting at now.
	Reset(now time.Time)

	// Expired reports whether the strategy ends the session at now
	// without any input (turn deadline passed).
	Expired(now time.Time) bool

	// Apply scores an accepted turn and advances the meters.
	Apply(ctx TurnContext) Bonus

	// Meter returns the HUD view at now.
	Meter(now time.Time) Meter
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// clampI restricts an int to [lo, hi].
func clampI(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
