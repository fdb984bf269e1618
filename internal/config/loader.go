package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMerge loads Color Merge configuration.
// Search order: customPath -> ~/.colormerge/configs/merge.yaml -> ./configs/merge.yaml -> embedded default
// Files only need to set the values they change; everything else keeps its default.
func LoadMerge(customPath string) (MergeConfig, error) {
	cfg := DefaultMergeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultMergeConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DefaultMergeConfig(), fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("merge.yaml"), filepath.Join("configs", "merge.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	embedded := DefaultMergeConfig()
	if err := yaml.Unmarshal(defaultMergeYAML, &embedded); err != nil || embedded.Validate() != nil {
		return DefaultMergeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad reads and validates a config file, reporting false on any problem.
func tryLoad(path string) (MergeConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MergeConfig{}, false
	}
	cfg := DefaultMergeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MergeConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return MergeConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".colormerge", "configs", filename)
}
