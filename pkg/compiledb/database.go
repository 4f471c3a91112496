// Package compiledb loads clang JSON compilation databases
// (compile_commands.json) and answers "how was this file compiled?" queries.
//
// A Database is built once, fails fast on any malformed record, and is
// read-only afterwards, so it is safe for concurrent use.
package compiledb

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cctok/pkg/fsutil"
)

// FileName is the database file looked up inside a build directory.
const FileName = "compile_commands.json"

// Database is an immutable index from canonical source path to the
// commands that compile it.
type Database struct {
	path    string
	index   map[string][]CompileCommand
	order   []string
	records int
}

// Option configures loading.
type Option func(*loadOptions)

type loadOptions struct {
	logger *log.Logger
}

// WithLogger sets a logger for debug output while loading.
func WithLogger(logger *log.Logger) Option {
	return func(o *loadOptions) {
		o.logger = logger
	}
}

// Load reads dir/compile_commands.json.
// Any failure matches ErrConstruction and no Database is returned.
func Load(ctx context.Context, dir string, opts ...Option) (*Database, error) {
	return LoadFile(ctx, filepath.Join(dir, FileName), opts...)
}

// LoadFile reads a compilation database from an explicit file path.
// Relative "directory" fields resolve against the file's directory.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Database, error) {
	options := loadOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, constructionError(path, err)
	}

	content, _, err := fsutil.ReadFile(ctx, absPath)
	if err != nil {
		return nil, constructionError(absPath, err)
	}

	records, err := decodeRecords(content)
	if err != nil {
		return nil, constructionError(absPath, err)
	}

	db := &Database{
		path:  absPath,
		index: make(map[string][]CompileCommand, len(records)),
	}

	baseDir := filepath.Dir(absPath)
	for idx, rec := range records {
		if idx%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, constructionError(absPath, err)
			}
		}

		workDir := resolve(baseDir, rec.directory)
		source := resolve(workDir, rec.file)

		key, err := fsutil.Canonicalize(source, "")
		if err != nil {
			return nil, constructionError(absPath, &RecordError{Index: idx, Field: fieldFile, Reason: err.Error()})
		}

		cmd := CompileCommand{
			Argv:             rec.argv,
			WorkingDirectory: workDir,
			SourceFile:       source,
		}
		if rec.output != "" {
			cmd.Output = resolve(workDir, rec.output)
		}

		if _, seen := db.index[key]; !seen {
			db.order = append(db.order, key)
		}
		db.index[key] = append(db.index[key], cmd)
		db.records++
	}

	if options.logger != nil {
		options.logger.Debug("loaded compilation database",
			"path", absPath,
			"records", db.records,
			"files", len(db.order),
		)
	}

	return db, nil
}

// Path returns the absolute path of the loaded database file.
func (db *Database) Path() string {
	return db.path
}

// Directory returns the directory containing the database file.
func (db *Database) Directory() string {
	return filepath.Dir(db.path)
}

// Len returns the number of records in the database.
func (db *Database) Len() int {
	return db.records
}

// Files returns the canonical source paths in first-discovery order.
func (db *Database) Files() []string {
	files := make([]string, len(db.order))
	copy(files, db.order)
	return files
}

// Lookup returns every command whose canonical source path equals the
// canonical form of path, in database order. Relative paths resolve against
// the process working directory. Lookup never fails: an unknown or
// uncanonicalizable path yields an empty slice.
func (db *Database) Lookup(path string) []CompileCommand {
	key, err := fsutil.Canonicalize(path, "")
	if err != nil {
		return []CompileCommand{}
	}

	matches := db.index[key]
	out := make([]CompileCommand, len(matches))
	for i, cmd := range matches {
		out[i] = cmd.Clone()
	}
	return out
}

// String describes the database for logs.
func (db *Database) String() string {
	return fmt.Sprintf("compiledb(%s, %d records)", db.path, db.records)
}
