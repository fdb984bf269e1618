package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultMergeConfig()
	if err := yaml.Unmarshal(GetDefaultYAML("merge_rhythm"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}

	want := DefaultMergeConfig()
	if cfg.Rhythm.BPM != want.Rhythm.BPM || cfg.Rhythm.Windows != want.Rhythm.Windows ||
		cfg.Rhythm.Health != want.Rhythm.Health || cfg.Timer != want.Timer {
		t.Errorf("embedded YAML differs from DefaultMergeConfig():\n%+v\nvs\n%+v", cfg, want)
	}
	if len(cfg.Rhythm.Pattern) != 3 || cfg.Rhythm.CycleBeats() != 13 {
		t.Errorf("pattern = %v, want [3 3 7]", cfg.Rhythm.Pattern)
	}
}

func TestBeatDuration(t *testing.T) {
	cfg := DefaultMergeConfig()
	if got := cfg.Rhythm.BeatDuration(); got != 500*time.Millisecond {
		t.Errorf("BeatDuration() = %v, want 500ms", got)
	}
	if got := cfg.Timer.Limit(); got != 2*time.Second {
		t.Errorf("Limit() = %v, want 2s", got)
	}
}

func TestLoadMergeCustomPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge.yaml")
	data := []byte("rhythm:\n  bpm: 150\ntimer:\n  limit_ms: 1000\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMerge(path)
	if err != nil {
		t.Fatalf("LoadMerge() failed: %v", err)
	}
	if cfg.Rhythm.BPM != 150 {
		t.Errorf("BPM = %d, want 150", cfg.Rhythm.BPM)
	}
	if cfg.Timer.LimitMS != 1000 {
		t.Errorf("LimitMS = %d, want 1000", cfg.Timer.LimitMS)
	}
	// Untouched values keep their defaults
	if cfg.Rhythm.Windows.GreatMS != 70 || cfg.Timer.BonusBase != 40 {
		t.Errorf("defaults lost after partial override: %+v", cfg)
	}
}

func TestLoadMergeRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("rhythm:\n  windows:\n    great_ms: 200\n    good_ms: 100\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMerge(path)
	if err == nil {
		t.Fatal("LoadMerge() should reject unordered windows")
	}
	if cfg.Rhythm.Windows.GreatMS != 70 {
		t.Error("LoadMerge() should fall back to defaults on error")
	}
}

func TestLoadMergeMissingCustomPath(t *testing.T) {
	if _, err := LoadMerge(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadMerge() with missing custom path should fail")
	}
}

func TestApplyMergePreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		great   int
		bad     int
		limitMS int
	}{
		{DifficultyEasy, 91, 286, 3000},
		{DifficultyNormal, 70, 220, 2000},
		{DifficultyHard, 53, 165, 1500},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultMergeConfig()
			ApplyMergePreset(&cfg, tc.preset)
			if cfg.Rhythm.Windows.GreatMS != tc.great || cfg.Rhythm.Windows.BadMS != tc.bad {
				t.Errorf("windows = %+v, want great=%d bad=%d", cfg.Rhythm.Windows, tc.great, tc.bad)
			}
			if cfg.Timer.LimitMS != tc.limitMS {
				t.Errorf("LimitMS = %d, want %d", cfg.Timer.LimitMS, tc.limitMS)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	if p, err := ParseDifficulty("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParseDifficulty(hard) = %q, %v", p, err)
	}
	if p, err := ParseDifficulty(""); err != nil || p != "" {
		t.Errorf("ParseDifficulty(\"\") = %q, %v", p, err)
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("ParseDifficulty(insane) should fail")
	}
}
