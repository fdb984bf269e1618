package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a CLI value to a preset. Empty means "use the config as is".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// windowScale returns how much the rhythm judge windows stretch for a preset.
func windowScale(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.3
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// ApplyMergePreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyMergePreset(cfg *MergeConfig, preset DifficultyPreset) {
	scale := windowScale(preset)
	if scale != 1.0 {
		w := &cfg.Rhythm.Windows
		w.GreatMS = scaleMS(w.GreatMS, scale)
		w.GoodMS = scaleMS(w.GoodMS, scale)
		w.BadMS = scaleMS(w.BadMS, scale)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Timer.LimitMS = 3000
	case DifficultyHard:
		cfg.Timer.LimitMS = 1500
	}
}

func scaleMS(ms int, scale float64) int {
	return int(float64(ms)*scale + 0.5)
}
