package config

import (
	_ "embed"
)

//go:embed defaults/merge.yaml
var defaultMergeYAML []byte

// DefaultMergeConfig returns the default Color Merge configuration.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Rhythm: RhythmConfig{
			BPM:     120,
			Pattern: []int{3, 3, 7},
			Windows: JudgeWindows{
				GreatMS: 70,
				GoodMS:  140,
				BadMS:   220,
			},
			Health: HealthConfig{
				Max:     100,
				Great:   10,
				Good:    4,
				BadNear: -8,
				BadFar:  -14,
			},
			Combo: ComboConfig{
				Rate: 0.06,
				Cap:  2.2,
			},
			GradeBonus: GradeBonusConfig{
				Great: 0.25,
				Good:  0.10,
				Bad:   -0.18,
			},
			MultiplierCap: 3.5,
			LabelHoldMS:   260,
		},
		Timer: TimerConfig{
			LimitMS:    2000,
			BonusRange: 2.0,
			BonusBase:  40,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "merge", "merge_rhythm", "merge_timer":
		return defaultMergeYAML
	default:
		return nil
	}
}
