package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "fifteen.yaml"

// LoadFifteen loads the puzzle configuration.
// Search order: customPath -> ~/.fifteen/configs/fifteen.yaml -> ./configs/fifteen.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadFifteen(customPath string) (FifteenConfig, error) {
	// Try custom path first; failures here are reported
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultFifteenConfig()
	if err := yaml.Unmarshal(defaultFifteenYAML, &cfg); err != nil {
		return DefaultFifteenConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads and validates one config file layered over the defaults.
func loadFile(path string) (FifteenConfig, error) {
	cfg := DefaultFifteenConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fifteen", "configs", filename)
}
