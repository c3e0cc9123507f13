package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the host configuration.
// Search order: customPath -> ~/.voiceflap/config.yaml -> ./configs/voiceflap.yaml -> embedded default
//
// Files are decoded over DefaultHostConfig, so a partial file only
// overrides the keys it names.
func Load(customPath string) (HostConfig, error) {
	cfg := DefaultHostConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if path := userConfigPath("config.yaml"); path != "" {
		if loaded, ok := tryLoad(path); ok {
			return loaded, nil
		}
	}

	// Try local configs directory
	if loaded, ok := tryLoad(filepath.Join("configs", "voiceflap.yaml")); ok {
		return loaded, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultHostConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad decodes path over the defaults. Missing, unreadable and invalid
// files are skipped so the next location in the search order is used.
func tryLoad(path string) (HostConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return HostConfig{}, false
	}
	cfg := DefaultHostConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HostConfig{}, false
	}
	if cfg.Validate() != nil {
		return HostConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// UserDir returns ~/.voiceflap, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".voiceflap")
}

// DBPath returns the configured database path, falling back to
// ~/.voiceflap/scores.db.
func (c HostConfig) DBPath() string {
	if c.Storage.DBPath != "" {
		return c.Storage.DBPath
	}
	dir := UserDir()
	if dir == "" {
		return "scores.db"
	}
	return filepath.Join(dir, "scores.db")
}
