package config

import "time"

// Config is the root configuration aggregate.
type Config struct {
	API    APIConfig    `yaml:"api"`
	System SystemConfig `yaml:"system"`
	Chat   ChatConfig   `yaml:"chat"`
	Dev    DevConfig    `yaml:"dev"`
}

// APIConfig describes how to reach the recommendation backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the HTTP client timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SystemConfig represents logging and terminal behaviour.
type SystemConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	LogFile        string `yaml:"log_file"` // empty = <config dir>/keeper.log
	NoColor        bool   `yaml:"no_color"`
	NonInteractive bool   `yaml:"non_interactive"`
}

// ChatConfig overrides the classifier vocabularies. Empty lists keep the
// built-in genre and author lists.
type ChatConfig struct {
	Genres  []string `yaml:"genres,omitempty"`
	Authors []string `yaml:"authors,omitempty"`
}

// DevConfig configures the local stub backend.
type DevConfig struct {
	Addr string `yaml:"addr"`
}
