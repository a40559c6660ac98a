package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./gpsort.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gpsort", "gpsort.toml")
}

// DefaultHistoryPath returns the XDG-compliant history catalog path.
func DefaultHistoryPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./gpsort-history.db"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "gpsort", "history.db")
}

// SearchPaths returns the locations Discover checks, in order.
func SearchPaths() []string {
	return []string{
		"./gpsort.toml",
		DefaultPath(),
		"/etc/gpsort/gpsort.toml",
	}
}

// Discover finds the config file using the standard search order:
//
//  1. GPSORT_CONFIG environment variable
//  2. ./gpsort.toml (current directory)
//  3. $XDG_CONFIG_HOME/gpsort/gpsort.toml
//  4. /etc/gpsort/gpsort.toml
//
// No file anywhere is not an error; the empty path means run on
// defaults. GPSORT_CONFIG pointing at an unreadable file is an error.
func Discover() (string, error) {
	if envPath := os.Getenv("GPSORT_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("GPSORT_CONFIG=%s: %w", envPath, err)
		}
		return envPath, nil
	}

	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}
