package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Movie.EncoderPath == "" {
		errs = append(errs, "movie.encoder_path: required")
	}
	if c.Movie.Width <= 0 {
		errs = append(errs, fmt.Sprintf("movie.width: must be positive, got %d", c.Movie.Width))
	}
	if c.Movie.CRF < 0 || c.Movie.CRF > 51 {
		errs = append(errs, fmt.Sprintf("movie.crf: must be between 0 and 51, got %d", c.Movie.CRF))
	}

	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if c.Log.MaxSizeMB < 1 {
		errs = append(errs, fmt.Sprintf("log.max_size_mb: must be positive, got %d", c.Log.MaxSizeMB))
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, fmt.Sprintf("log.max_backups: must not be negative, got %d", c.Log.MaxBackups))
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, "history.path: required when history is enabled")
	}

	return errs
}
