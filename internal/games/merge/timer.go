package merge

import (
	"math"
	"time"

	"github.com/vovakirdan/colormerge/internal/config"
)

// TimerStrategy gives each turn a countdown. Moving early earns a flat bonus
// that shrinks linearly with the time spent; missing the deadline ends the game.
type TimerStrategy struct {
	cfg      config.TimerConfig
	limit    time.Duration
	deadline time.Time
}

// NewTimerStrategy creates a timer strategy from config.
func NewTimerStrategy(cfg config.TimerConfig) *TimerStrategy {
	return &TimerStrategy{
		cfg:   cfg,
		limit: cfg.Limit(),
	}
}

// Name returns the variant identifier.
func (s *TimerStrategy) Name() string {
	return "timer"
}

// Reset starts the first turn at now.
func (s *TimerStrategy) Reset(now time.Time) {
	s.deadline = now.Add(s.limit)
}

// Deadline returns when the current turn runs out.
func (s *TimerStrategy) Deadline() time.Time {
	return s.deadline
}

// Remaining returns the time left in the current turn, never negative.
func (s *TimerStrategy) Remaining(now time.Time) time.Duration {
	return max(s.deadline.Sub(now), 0)
}

// Hold pushes the deadline back by d.
func (s *TimerStrategy) Hold(d time.Duration) {
	s.deadline = s.deadline.Add(d)
}

// Expired reports whether the current turn's deadline has passed.
func (s *TimerStrategy) Expired(now time.Time) bool {
	return !now.Before(s.deadline)
}

// MultiplierAt returns 1 + (remaining/limit)*bonusRange with the ratio clamped to [0, 1].
func (s *TimerStrategy) MultiplierAt(now time.Time) float64 {
	if s.limit <= 0 {
		return 1
	}
	ratio := clampF(float64(s.deadline.Sub(now))/float64(s.limit), 0, 1)
	return 1 + ratio*s.cfg.BonusRange
}

// Apply converts the remaining time into a flat bonus and starts the next turn.
func (s *TimerStrategy) Apply(ctx TurnContext) Bonus {
	multiplier := s.MultiplierAt(ctx.Now)
	flat := int(math.Floor((multiplier - 1) * s.cfg.BonusBase))

	s.deadline = ctx.Now.Add(s.limit)

	return Bonus{
		Mode:       BonusFlat,
		Multiplier: multiplier,
		Flat:       flat,
		TurnScore:  ctx.Gained + flat,
	}
}

// Meter returns the HUD view at now.
func (s *TimerStrategy) Meter(now time.Time) Meter {
	return Meter{
		Variant:    s.Name(),
		Multiplier: s.MultiplierAt(now),
		Remaining:  s.Remaining(now),
		Limit:      s.limit,
	}
}
