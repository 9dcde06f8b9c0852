package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/talekeeper/keeper/internal/defs"
)

// Loader reads configuration from the YAML config file.
type Loader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads config.yaml from configDir and returns a Config with defaults
// applied for missing fields. A missing file yields defaults. An invalid file
// is skipped with a warning so a typo never locks the user out of the client.
func (l *Loader) Load(configDir string) (*Config, error) {
	cfg := NewDefaultConfig()

	loaded, err := loadYAMLFile(filepath.Clean(configDir), defs.ConfigYAML, cfg)
	if err != nil {
		if errors.Is(err, ErrInvalidYAML) {
			slog.Warn("failed to parse config, using defaults", "error", err)
			return NewDefaultConfig(), nil
		}
		return nil, err
	}
	if !loaded {
		slog.Debug("config file not found, using defaults", "dir", configDir)
	}

	return cfg, nil
}

// loadYAMLFile reads a YAML file from the given directory and unmarshals it
// into the target struct. Returns (true, nil) if the file was found and parsed,
// (false, nil) if the file does not exist, or (false, error) on failure.
func loadYAMLFile(dir, filename string, target any) (bool, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filename, ErrInvalidYAML)
	}

	return true, nil
}

// loadDotEnv loads .env files from the working directory and the config
// directory. Variables already present in the environment win.
func loadDotEnv(configDir string) {
	for _, path := range []string{defs.DotEnv, filepath.Join(configDir, defs.DotEnv)} {
		if err := godotenv.Load(path); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				slog.Warn("failed to load env file", "path", path, "error", err)
			}
			continue
		}
		slog.Debug("loaded env file", "path", path)
	}
}
