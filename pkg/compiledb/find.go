package compiledb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/cctok/pkg/fsutil"
)

// buildSubdir is probed next to each candidate directory, as clangd does.
const buildSubdir = "build"

// Find searches start and each of its ancestors for a compilation database,
// checking both the directory itself and its "build" subdirectory. The
// first database file found is loaded; a malformed one is an error rather
// than a reason to keep searching.
//
// start may be a file or a directory. When no database exists the error
// matches both ErrConstruction and fsutil.ErrNotFound.
func Find(ctx context.Context, start string, opts ...Option) (*Database, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, constructionError(start, err)
	}

	if stat, err := os.Stat(abs); err == nil && !stat.IsDir() {
		abs = filepath.Dir(abs)
	}

	for dir := abs; ; {
		if err := ctx.Err(); err != nil {
			return nil, constructionError(abs, err)
		}

		for _, candidate := range []string{dir, filepath.Join(dir, buildSubdir)} {
			path := filepath.Join(candidate, FileName)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			return LoadFile(ctx, path, opts...)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil, constructionError(abs,
		fmt.Errorf("%w: no %s in %s or its parents", fsutil.ErrNotFound, FileName, abs))
}

// IsNotFound reports whether err means no database file exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrConstruction) && errors.Is(err, fsutil.ErrNotFound)
}
