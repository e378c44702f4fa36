package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FoxConfigFile is the file name searched for in the config directories.
const FoxConfigFile = "foxscape.yaml"

// LoadFox loads the Foxscape configuration.
// Search order: customPath -> ~/.foxscape/configs/foxscape.yaml ->
// ./configs/foxscape.yaml -> embedded default -> hard-coded default.
// Only a custom path reports errors; the other locations are skipped when
// missing or invalid. Files may set a subset of fields; the rest keep their
// default values.
func LoadFox(customPath string) (FoxConfig, error) {
	if customPath != "" {
		return LoadFoxFile(customPath)
	}

	for _, path := range []string{userConfigPath(FoxConfigFile), filepath.Join("configs", FoxConfigFile)} {
		if path == "" {
			continue
		}
		if cfg, err := LoadFoxFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseFox(defaultFoxYAML)
	if err != nil {
		return DefaultFoxConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFoxFile reads and validates a single config file.
func LoadFoxFile(path string) (FoxConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultFoxConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseFox(data)
	if err != nil {
		return DefaultFoxConfig(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func parseFox(data []byte) (FoxConfig, error) {
	cfg := DefaultFoxConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".foxscape", "configs", filename)
}
