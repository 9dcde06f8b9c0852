package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/talekeeper/keeper/internal/defs"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	dir    string
	state  managerState
	loader *Loader
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// ResolveDir returns the configuration directory: KEEPER_CONFIG_DIR when set,
// otherwise ~/.keeper.
func ResolveDir() (string, error) {
	if envDir := os.Getenv("KEEPER_CONFIG_DIR"); envDir != "" {
		return filepath.Clean(envDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, defs.KeeperDir), nil
}

// Load reads configuration from configDir (ResolveDir when empty).
// Precedence, lowest first: compiled defaults, config.yaml, .env files,
// process environment. The result is validated before being stored.
func (m *Manager) Load(configDir string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if configDir == "" {
		dir, err := ResolveDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	loadDotEnv(configDir)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.config = cfg
	m.dir = configDir
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Dir returns the configuration directory resolved by Load.
func (m *Manager) Dir() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dir
}

// Set updates a single dotted key in memory. The new value is validated
// against the whole configuration before it is applied.
func (m *Manager) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	next := *m.config
	switch key {
	case "api.base_url":
		next.API.BaseURL = strings.TrimRight(strings.TrimSpace(value), "/")
	case "api.timeout_seconds":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", ErrInvalidConfig, key)
		}
		next.API.TimeoutSeconds = n
	case "system.log_level":
		next.System.LogLevel = strings.ToLower(strings.TrimSpace(value))
	case "system.log_format":
		next.System.LogFormat = strings.ToLower(strings.TrimSpace(value))
	case "system.no_color":
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean", ErrInvalidConfig, key)
		}
		next.System.NoColor = b
	case "dev.addr":
		next.Dev.Addr = strings.TrimSpace(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	if err := Validate(&next); err != nil {
		return err
	}
	m.config = &next
	return nil
}

// Save persists the current configuration to <dir>/config.yaml atomically.
// Returns ErrNotInitialized if Load() has not been called.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", defs.ConfigYAML, err)
	}

	return AtomicWrite(filepath.Join(m.dir, defs.ConfigYAML), data, 0o644)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("KEEPER_API_URL"); url != "" {
		cfg.API.BaseURL = strings.TrimRight(url, "/")
	}
	if timeout := os.Getenv("KEEPER_HTTP_TIMEOUT"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			cfg.API.TimeoutSeconds = n
		}
	}
	if level := os.Getenv("KEEPER_LOG_LEVEL"); level != "" {
		cfg.System.LogLevel = strings.ToLower(level)
	}
	if format := os.Getenv("KEEPER_LOG_FORMAT"); format != "" {
		cfg.System.LogFormat = strings.ToLower(format)
	}
	if noColor := os.Getenv("KEEPER_NO_COLOR"); noColor == "true" || noColor == "1" {
		cfg.System.NoColor = true
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.System.NoColor = true
	}
	if ni := os.Getenv("KEEPER_NON_INTERACTIVE"); ni == "true" || ni == "1" {
		cfg.System.NonInteractive = true
	}
}

// AtomicWrite writes data to a file atomically using temp file + os.Rename.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".keeper-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
