package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// CaseInsensitive reports whether Canonicalize folds case on this platform.
// darwin and windows default to case-insensitive file systems.
func CaseInsensitive() bool {
	return runtime.GOOS == "darwin" || runtime.GOOS == "windows"
}

// Canonicalize converts path into the form used as a compilation-database key.
//
// Relative paths are resolved against base (or the process working directory
// when base is empty). Symlinks are resolved; when the path does not exist,
// the deepest existing ancestor is resolved and the remaining components are
// appended unchanged. On case-insensitive platforms the result is lowercased.
func Canonicalize(path, base string) (string, error) {
	if path == "" {
		return "", errors.New("canonicalize: empty path")
	}

	if !filepath.IsAbs(path) {
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("get working directory: %w", err)
			}
			base = wd
		}
		path = filepath.Join(base, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path %s: %w", path, err)
	}

	resolved, err := resolveExisting(abs)
	if err != nil {
		return "", err
	}

	if CaseInsensitive() {
		resolved = strings.ToLower(resolved)
	}
	return resolved, nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of abs.
func resolveExisting(abs string) (string, error) {
	var missing []string
	current := abs

	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resolve %s: %w", abs, err)
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Nothing exists, not even the root; keep the cleaned path.
			return abs, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}
