package merge

import (
	"math"
	"time"

	"github.com/vovakirdan/colormerge/internal/config"
)

// Grade is a timing judgement.
type Grade string

const (
	GradeNone  Grade = ""
	GradeGreat Grade = "GREAT"
	GradeGood  Grade = "GOOD"
	GradeBad   Grade = "BAD"
)

// Judgement is the timing classification of one input against the expected beat.
type Judgement struct {
	Grade       Grade
	Delta       time.Duration // Input time minus expected beat time
	HealthDelta int
	Far         bool // BAD beyond the outer window
}

// MultiplierTier buckets the rhythm multiplier for display.
type MultiplierTier int

const (
	TierBase MultiplierTier = iota
	TierMid
	TierHigh
	TierMax
)

// TierFor returns the display tier of a multiplier.
func TierFor(multiplier float64) MultiplierTier {
	switch {
	case multiplier >= 2.8:
		return TierMax
	case multiplier >= 2.1:
		return TierHigh
	case multiplier >= 1.5:
		return TierMid
	default:
		return TierBase
	}
}

// Segment is one part of the repeating lane pattern.
type Segment int

const (
	SegmentA Segment = iota
	SegmentB
	SegmentC
)

// LaneCue is the decorative rhythm lane state. It never affects scoring.
type LaneCue struct {
	Segment Segment
	Cursor  float64 // Horizontal cursor position in percent, 4..96
}

// RhythmStrategy scores turns by how close they land on a fixed beat grid.
// The beat index advances once per accepted turn, so the player sets the pace
// and is judged against start + index*beat.
type RhythmStrategy struct {
	cfg  config.RhythmConfig
	beat time.Duration

	start      time.Time
	beatIndex  int
	health     int
	combo      int
	multiplier float64
	lastGrade  Grade
	gradeAt    time.Time
}

// NewRhythmStrategy creates a rhythm strategy from config.
func NewRhythmStrategy(cfg config.RhythmConfig) *RhythmStrategy {
	s := &RhythmStrategy{
		cfg:  cfg,
		beat: cfg.BeatDuration(),
	}
	s.Reset(time.Time{})
	return s
}

// Name returns the variant identifier.
func (s *RhythmStrategy) Name() string {
	return "rhythm"
}

// Reset restarts the beat grid at now with full health.
func (s *RhythmStrategy) Reset(now time.Time) {
	s.start = now
	s.beatIndex = 0
	s.health = s.cfg.Health.Max
	s.combo = 0
	s.multiplier = 1
	s.lastGrade = GradeNone
	s.gradeAt = time.Time{}
}

// Expired is always false: the rhythm variant has no deadline.
func (s *RhythmStrategy) Expired(time.Time) bool {
	return false
}

// ExpectedBeat returns the time the next input is expected.
func (s *RhythmStrategy) ExpectedBeat() time.Time {
	return s.start.Add(time.Duration(s.beatIndex) * s.beat)
}

// Judge classifies an input at now against the expected beat and advances
// the beat index. It does not touch health, combo or multiplier.
func (s *RhythmStrategy) Judge(now time.Time) Judgement {
	delta := now.Sub(s.ExpectedBeat())
	s.beatIndex++
	return s.judgeDelta(delta)
}

func (s *RhythmStrategy) judgeDelta(delta time.Duration) Judgement {
	abs := delta.Abs()
	w := s.cfg.Windows
	h := s.cfg.Health

	switch {
	case abs <= time.Duration(w.GreatMS)*time.Millisecond:
		return Judgement{Grade: GradeGreat, Delta: delta, HealthDelta: h.Great}
	case abs <= time.Duration(w.GoodMS)*time.Millisecond:
		return Judgement{Grade: GradeGood, Delta: delta, HealthDelta: h.Good}
	case abs <= time.Duration(w.BadMS)*time.Millisecond:
		return Judgement{Grade: GradeBad, Delta: delta, HealthDelta: h.BadNear}
	default:
		return Judgement{Grade: GradeBad, Delta: delta, HealthDelta: h.BadFar, Far: true}
	}
}

// Apply scores the turn with the multiplier earned so far, then folds the
// turn's judgement into health, combo and the multiplier for the next turn.
func (s *RhythmStrategy) Apply(ctx TurnContext) Bonus {
	j := s.Judge(ctx.Now)

	applied := s.multiplier
	turnScore := int(math.Floor(float64(ctx.Gained) * applied))

	s.applyJudgement(j, ctx.Now)

	return Bonus{
		Mode:       BonusScale,
		Multiplier: applied,
		TurnScore:  turnScore,
		Judgement:  &j,
		Depleted:   s.health <= 0,
	}
}

func (s *RhythmStrategy) applyJudgement(j Judgement, now time.Time) {
	s.health = clampI(s.health+j.HealthDelta, 0, s.cfg.Health.Max)

	var gradeBonus float64
	switch j.Grade {
	case GradeGreat:
		s.combo++
		gradeBonus = s.cfg.GradeBonus.Great
	case GradeGood:
		s.combo = max(s.combo-1, 0)
		gradeBonus = s.cfg.GradeBonus.Good
	default:
		s.combo = 0
		gradeBonus = s.cfg.GradeBonus.Bad
	}

	comboBoost := math.Min(float64(s.combo)*s.cfg.Combo.Rate, s.cfg.Combo.Cap)
	s.multiplier = clampF(1+comboBoost+gradeBonus, 1, s.cfg.MultiplierCap)
	s.lastGrade = j.Grade
	s.gradeAt = now
}

// Multiplier returns the multiplier the next turn will be scored with.
func (s *RhythmStrategy) Multiplier() float64 {
	return s.multiplier
}

// Health returns the current health.
func (s *RhythmStrategy) Health() int {
	return s.health
}

// Combo returns the current combo counter.
func (s *RhythmStrategy) Combo() int {
	return s.combo
}

// BeatIndex returns how many turns have been judged.
func (s *RhythmStrategy) BeatIndex() int {
	return s.beatIndex
}

// Meter returns the HUD view.
func (s *RhythmStrategy) Meter(time.Time) Meter {
	return Meter{
		Variant:    s.Name(),
		Multiplier: s.multiplier,
		Health:     s.health,
		MaxHealth:  s.cfg.Health.Max,
		Combo:      s.combo,
		BeatIndex:  s.beatIndex,
		LastGrade:  s.lastGrade,
		GradeAt:    s.gradeAt,
	}
}

// Cue returns the decorative lane state at now. The cursor sweeps one sine
// period per pattern cycle; the segment follows the pattern's beat counts.
func (s *RhythmStrategy) Cue(now time.Time) LaneCue {
	cycleBeats := s.cfg.CycleBeats()
	if cycleBeats == 0 || s.beat <= 0 {
		return LaneCue{Segment: SegmentA, Cursor: 50}
	}

	cycle := time.Duration(cycleBeats) * s.beat
	pos := now.Sub(s.start) % cycle
	if pos < 0 {
		pos += cycle
	}

	normalized := float64(pos) / float64(cycle)
	cue := LaneCue{
		Segment: SegmentC,
		Cursor:  50 + math.Sin(normalized*2*math.Pi)*46,
	}

	beatProgress := float64(pos) / float64(s.beat)
	boundary := 0
	for i, n := range s.cfg.Pattern {
		boundary += n
		if beatProgress < float64(boundary) {
			cue.Segment = Segment(min(i, int(SegmentC)))
			break
		}
	}
	return cue
}
