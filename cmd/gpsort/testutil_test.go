package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repsac/gp-sort-sequences/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns defaults with the history catalog parked in a
// temp dir and disabled, so tests never touch the real XDG paths.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.History.Enabled = false
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.Log.File = ""
	return cfg
}

// writeFile creates path with one byte of content, making any parent
// directories on the way.
func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}
