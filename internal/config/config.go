// Package config provides YAML-based game configuration loading and
// difficulty presets for Color Merge.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MergeConfig contains all tunable rules of the Color Merge scoring variants.
// Board size, spawn odds and the win condition are fixed and live in the game.
type MergeConfig struct {
	Rhythm RhythmConfig `yaml:"rhythm"`
	Timer  TimerConfig  `yaml:"timer"`
}

// RhythmConfig defines the rhythm-timing variant.
type RhythmConfig struct {
	BPM           int              `yaml:"bpm"`
	Pattern       []int            `yaml:"pattern"` // Beats per lane segment, decorative only
	Windows       JudgeWindows     `yaml:"windows"`
	Health        HealthConfig     `yaml:"health"`
	Combo         ComboConfig      `yaml:"combo"`
	GradeBonus    GradeBonusConfig `yaml:"grade_bonus"`
	MultiplierCap float64          `yaml:"multiplier_cap"`
	LabelHoldMS   int              `yaml:"label_hold_ms"` // How long a grade label stays before "KEEP"
}

// JudgeWindows are the absolute timing deviations, in milliseconds, that
// separate the grades. Anything beyond BadMS is a far miss.
type JudgeWindows struct {
	GreatMS int `yaml:"great_ms"`
	GoodMS  int `yaml:"good_ms"`
	BadMS   int `yaml:"bad_ms"`
}

// HealthConfig defines the health meter and per-grade deltas.
type HealthConfig struct {
	Max     int `yaml:"max"`
	Great   int `yaml:"great"`
	Good    int `yaml:"good"`
	BadNear int `yaml:"bad_near"`
	BadFar  int `yaml:"bad_far"`
}

// ComboConfig defines how the combo counter feeds the multiplier.
type ComboConfig struct {
	Rate float64 `yaml:"rate"` // Multiplier added per combo step
	Cap  float64 `yaml:"cap"`  // Maximum combo contribution
}

// GradeBonusConfig is the multiplier offset contributed by the latest grade.
type GradeBonusConfig struct {
	Great float64 `yaml:"great"`
	Good  float64 `yaml:"good"`
	Bad   float64 `yaml:"bad"`
}

// TimerConfig defines the turn-countdown variant.
type TimerConfig struct {
	LimitMS    int     `yaml:"limit_ms"`
	BonusRange float64 `yaml:"bonus_range"` // Multiplier gained at full remaining time
	BonusBase  float64 `yaml:"bonus_base"`  // Flat points per unit of multiplier above 1
}

// BeatDuration returns the length of one beat.
func (r RhythmConfig) BeatDuration() time.Duration {
	if r.BPM <= 0 {
		return 0
	}
	return time.Minute / time.Duration(r.BPM)
}

// CycleBeats returns the number of beats in one full lane pattern.
func (r RhythmConfig) CycleBeats() int {
	total := 0
	for _, n := range r.Pattern {
		total += n
	}
	return total
}

// LabelHold returns how long a grade label stays visible.
func (r RhythmConfig) LabelHold() time.Duration {
	return time.Duration(r.LabelHoldMS) * time.Millisecond
}

// Limit returns the per-turn time limit.
func (t TimerConfig) Limit() time.Duration {
	return time.Duration(t.LimitMS) * time.Millisecond
}

// Validate checks the config for values that would break the scoring rules.
func (c MergeConfig) Validate() error {
	var errs []error

	r := c.Rhythm
	if r.BPM <= 0 {
		errs = append(errs, fmt.Errorf("rhythm.bpm must be positive, got %d", r.BPM))
	}
	for i, n := range r.Pattern {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("rhythm.pattern[%d] must be positive, got %d", i, n))
		}
	}
	w := r.Windows
	if w.GreatMS <= 0 || w.GreatMS > w.GoodMS || w.GoodMS > w.BadMS {
		errs = append(errs, fmt.Errorf("rhythm.windows must satisfy 0 < great <= good <= bad, got %d/%d/%d",
			w.GreatMS, w.GoodMS, w.BadMS))
	}
	if r.Health.Max <= 0 {
		errs = append(errs, fmt.Errorf("rhythm.health.max must be positive, got %d", r.Health.Max))
	}
	if r.MultiplierCap < 1 {
		errs = append(errs, fmt.Errorf("rhythm.multiplier_cap must be at least 1, got %g", r.MultiplierCap))
	}
	if r.Combo.Rate < 0 || r.Combo.Cap < 0 {
		errs = append(errs, errors.New("rhythm.combo rate and cap must not be negative"))
	}

	t := c.Timer
	if t.LimitMS <= 0 {
		errs = append(errs, fmt.Errorf("timer.limit_ms must be positive, got %d", t.LimitMS))
	}
	if t.BonusRange < 0 || t.BonusBase < 0 {
		errs = append(errs, errors.New("timer bonus_range and bonus_base must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid merge config: %w", errors.Join(errs...))
	}
	return nil
}
