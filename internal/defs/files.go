// Package defs holds file and directory names shared across packages.
package defs

// KeeperDir is the per-user state directory under the home directory.
const KeeperDir = ".keeper"

// File names under KeeperDir.
const (
	// ConfigYAML is the user configuration file.
	ConfigYAML = "config.yaml"

	// SessionYAML holds the token and profile of the signed-in user.
	SessionYAML = "session.yaml"

	// LogFile receives slog output while the terminal UI owns stdout.
	LogFile = "keeper.log"

	// DotEnv is the optional environment file loaded before env overrides.
	DotEnv = ".env"
)
