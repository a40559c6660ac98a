package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates everything wrong with a configuration file:
// unresolved environment variables from loading and messages from
// validation.
type ConfigError struct {
	Path    string
	Missing []string // unresolved environment variables
	Errors  []string // validation errors
}

func (e *ConfigError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("config %s:", e.Path))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}
	for _, msg := range e.Errors {
		parts = append(parts, fmt.Sprintf("  - %s", msg))
	}
	return strings.Join(parts, "\n")
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
