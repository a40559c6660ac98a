// Package config handles TOML configuration loading with environment
// variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/repsac/gp-sort-sequences/internal/encoder"
)

// Config is the root configuration structure.
type Config struct {
	Movie   MovieConfig   `toml:"movie"`
	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
}

type MovieConfig struct {
	EncoderPath string `toml:"encoder_path"`
	Width       int    `toml:"width"`
	CRF         int    `toml:"crf"`
}

type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file. Environment variable
// references that resolve to nothing are an error, not a silent
// empty string.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Movie.EncoderPath == "" {
		c.Movie.EncoderPath = "ffmpeg"
	}
	if c.Movie.Width == 0 {
		c.Movie.Width = encoder.DefaultWidth
	}
	if c.Movie.CRF == 0 {
		c.Movie.CRF = encoder.DefaultCRF
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.History.Path == "" {
		c.History.Path = DefaultHistoryPath()
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable
// values and reports the names that were not set.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	seen := make(map[string]struct{})
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		seen[varName] = struct{}{}
		return match
	})

	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return out, missing
}
