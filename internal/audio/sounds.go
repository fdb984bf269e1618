package audio

import (
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/colormerge/internal/games/merge"
)

const defaultClick = 30 * time.Millisecond

// MoveClick is played for every accepted turn.
func MoveClick() Click {
	return Click{Freq: 1700, Gain: 0.06, Duration: defaultClick}
}

// SpawnClick rises with the spawned tile level.
func SpawnClick(level int) Click {
	return Click{Freq: 1750 + float64(level)*30, Gain: 0.06, Duration: defaultClick}
}

// MergeClicks returns the two-click chirp of one merge. chain is the
// 1-based position of the merge among the turn's merges.
func MergeClicks(level, chain int) []Click {
	step := max(level, 1)
	base := 1500 + float64(step)*60 + float64(chain)*40
	return []Click{
		{Freq: base, Gain: math.Min(0.08+float64(step)*0.003, 0.15), Duration: 34 * time.Millisecond},
		{Freq: base * 1.2, Gain: 0.055, Delay: 14 * time.Millisecond, Duration: 28 * time.Millisecond},
	}
}

// GameOverClick is played when a session ends.
func GameOverClick() Click {
	return Click{Freq: 900, Gain: 0.08, Duration: 60 * time.Millisecond}
}

// TurnClicks returns every click of an accepted turn: the move, the spawn,
// then the merges from the lowest level up.
func TurnClicks(ev merge.TurnEvent) []Click {
	clicks := []Click{MoveClick()}
	if ev.SpawnedID != 0 {
		clicks = append(clicks, SpawnClick(ev.SpawnedLevel))
	}

	levels := slices.Clone(ev.MergedLevels)
	slices.Sort(levels)
	for i, level := range levels {
		clicks = append(clicks, MergeClicks(level, i+1)...)
	}
	return clicks
}
