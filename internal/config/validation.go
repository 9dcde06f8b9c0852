package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate checks the configuration for correctness.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateAPI(&cfg.API)...)
	errs = append(errs, validateSystem(&cfg.System)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateAPI checks the backend base URL and timeout.
func validateAPI(a *APIConfig) []ValidationError {
	var errs []ValidationError

	u, err := url.Parse(a.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "must be an absolute http or https URL (example: base_url: http://localhost:5000)",
			Value:   a.BaseURL,
			Wrapped: ErrInvalidBaseURL,
		})
	}

	if a.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_seconds",
			Message: "must be greater than 0",
			Value:   a.TimeoutSeconds,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateSystem checks log level and format.
func validateSystem(s *SystemConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validLogLevels, s.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   s.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}

	if !slices.Contains(validLogFormats, s.LogFormat) {
		errs = append(errs, ValidationError{
			Field:   "system.log_format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
			Value:   s.LogFormat,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}
