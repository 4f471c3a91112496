package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/fsutil"
)

// CommandSource tells where a file's compile command came from.
type CommandSource string

const (
	// SourceDatabase means the command was found in compile_commands.json.
	SourceDatabase CommandSource = "database"

	// SourceFlags means the command was built from explicit flags.
	SourceFlags CommandSource = "flags"

	// SourceFallback means no database listed the file and a bare
	// command was used.
	SourceFallback CommandSource = "fallback"
)

// resolver picks the compile command for each file. Databases are loaded
// at most once per starting directory for the lifetime of a run.
type resolver struct {
	opts    Options
	workDir string
	logger  *log.Logger

	group singleflight.Group
	mu    sync.Mutex
	dbs   map[string]*compiledb.Database
}

func newResolver(opts Options, workDir string, logger *log.Logger) *resolver {
	return &resolver{
		opts:    opts,
		workDir: workDir,
		logger:  logger,
		dbs:     make(map[string]*compiledb.Database),
	}
}

// resolve returns the command to tokenize path with. When the database
// lists several commands the first is used.
func (r *resolver) resolve(ctx context.Context, path string) (compiledb.CompileCommand, CommandSource, error) {
	if r.opts.UseFlags {
		return r.synthesize(path, r.opts.Flags), SourceFlags, nil
	}

	cmds, db, err := r.lookup(ctx, path)
	if err != nil {
		return compiledb.CompileCommand{}, "", err
	}
	if len(cmds) == 0 {
		return r.synthesize(path, nil), SourceFallback, nil
	}
	if len(cmds) > 1 {
		r.logger.Warn("compilation database has several commands for file; using the first",
			"path", path, "database", db.Path(), "commands", len(cmds))
	}
	return cmds[0], SourceDatabase, nil
}

// lookup returns every command for path from the first database that
// lists it. Search order is BuildDir, then the working directory, then
// path's directory and its ancestors.
func (r *resolver) lookup(ctx context.Context, path string) ([]compiledb.CompileCommand, *compiledb.Database, error) {
	type candidate struct {
		dir   string
		exact bool
	}
	candidates := make([]candidate, 0, 3)
	if r.opts.BuildDir != "" {
		candidates = append(candidates, candidate{r.opts.BuildDir, true})
	}
	candidates = append(candidates, candidate{r.workDir, true}, candidate{filepath.Dir(path), false})

	for _, c := range candidates {
		db, err := r.database(ctx, c.dir, c.exact)
		if err != nil {
			return nil, nil, err
		}
		if db == nil {
			continue
		}
		if cmds := db.Lookup(path); len(cmds) > 0 {
			return cmds, db, nil
		}
	}
	return nil, nil, nil
}

// database loads the database in dir when exact is set, or searches dir
// and its ancestors otherwise. A nil Database with a nil error means none
// exists.
func (r *resolver) database(ctx context.Context, dir string, exact bool) (*compiledb.Database, error) {
	key := "find:" + dir
	if exact {
		key = "load:" + dir
	}

	r.mu.Lock()
	db, cached := r.dbs[key]
	r.mu.Unlock()
	if cached {
		return db, nil
	}

	value, err, _ := r.group.Do(key, func() (any, error) {
		var (
			db  *compiledb.Database
			err error
		)
		if exact {
			db, err = compiledb.Load(ctx, dir, compiledb.WithLogger(r.logger))
		} else {
			db, err = compiledb.Find(ctx, dir, compiledb.WithLogger(r.logger))
		}
		if errors.Is(err, fsutil.ErrNotFound) {
			db, err = nil, nil
		}
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.dbs[key] = db
		r.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	db, _ = value.(*compiledb.Database)
	return db, nil
}

// synthesize builds "placeholder flags... -- path" in the working directory.
func (r *resolver) synthesize(path string, flags []string) compiledb.CompileCommand {
	argv := make([]string, 0, len(flags)+3)
	argv = append(argv, r.opts.placeholder())
	argv = append(argv, flags...)
	argv = append(argv, "--", path)
	return compiledb.CompileCommand{
		Argv:             slices.Clip(argv),
		WorkingDirectory: r.workDir,
		SourceFile:       path,
	}
}

// Lookup returns the compile commands for path using the same database
// search as Run, together with the path of the database that listed them.
// It returns no commands and an empty database path when none lists path.
func Lookup(ctx context.Context, opts Options, path string) ([]compiledb.CompileCommand, string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, "", fmt.Errorf("resolve working directory: %w", err)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	res := newResolver(opts, workDir, log.New(io.Discard))
	cmds, db, err := res.lookup(ctx, path)
	if err != nil || db == nil {
		return nil, "", err
	}
	return cmds, db.Path(), nil
}
