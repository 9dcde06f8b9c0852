package config

// Default value constants.
const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultTimeoutSeconds = 15

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultDevAddr = "127.0.0.1:5000"
)

// validLogLevels and validLogFormats list accepted system values.
var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// NewDefaultConfig returns a Config populated with compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		System: SystemConfig{
			LogLevel:  DefaultLogLevel,
			LogFormat: DefaultLogFormat,
		},
		Dev: DevConfig{
			Addr: DefaultDevAddr,
		},
	}
}
