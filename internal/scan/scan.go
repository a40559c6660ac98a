// Package scan walks source roots and collects the regular files that
// classification will consider.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotDirectory is returned when a source root exists but is not a
// directory.
var ErrNotDirectory = errors.New("source root is not a directory")

// Entry is one regular file discovered under a source root.
type Entry struct {
	Path string // file path built from the root argument
	Base string // base filename
	Root string // source root that produced the entry
}

// Files walks roots in the given order and returns every regular file
// below them. Within a root the walker visits names lexically, so the
// combined result is deterministic for a given argument list.
// Symbolic links are never followed, and entries the walker cannot
// read drop out rather than failing the run. The exclude path, when
// non-empty, prunes that subtree from every walk; this keeps the
// destination out of its own input. A path reachable from more than
// one root is returned once, at its first position.
func Files(ctx context.Context, roots []string, exclude string) ([]Entry, error) {
	if exclude != "" {
		exclude = filepath.Clean(exclude)
	}

	entries := make([]Entry, 0, 128)
	seen := make(map[string]struct{})
	for _, root := range roots {
		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("source root %s: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				// Unreadable entries drop out of the walk; the root
				// itself was checked above.
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if exclude != "" && isUnder(path, exclude) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			clean := filepath.Clean(path)
			if _, ok := seen[clean]; ok {
				return nil
			}
			seen[clean] = struct{}{}
			entries = append(entries, Entry{Path: path, Base: d.Name(), Root: root})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return entries, nil
}

// isUnder reports whether path is base itself or inside it.
func isUnder(path, base string) bool {
	path = filepath.Clean(path)
	if path == base {
		return true
	}
	return strings.HasPrefix(path, base+string(filepath.Separator))
}
