// Package runner tokenizes many C-family source files concurrently.
//
// It discovers sources under the given paths, resolves a compile command
// for each one (from a compilation database, explicit flags, or a bare
// fallback) and hands the command to a tokenize.Tokenizer. Unlike
// tokenize.TokenizeAll, a failing file does not stop the run: every file
// gets its own FileOutcome.
package runner

import "github.com/yaklabco/cctok/pkg/tokenize"

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (with
	// leading dot). Empty means every file langdetect recognizes.
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// BuildDir is tried for compile_commands.json before WorkingDir and
	// the ancestors of each source file.
	BuildDir string

	// Flags are used instead of a compilation database when UseFlags is set.
	// The source path is appended after "--".
	Flags []string

	// UseFlags skips database lookup. It is set when the command line ends
	// with "--", even with no flags after it.
	UseFlags bool

	// KeepContent stores each file's content in its outcome.
	KeepContent bool

	// PlaceholderExecutable is argv[0] for commands built from Flags or
	// for the fallback command. Defaults to tokenize.DefaultPlaceholderExecutable.
	PlaceholderExecutable string
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) placeholder() string {
	if o.PlaceholderExecutable == "" {
		return tokenize.DefaultPlaceholderExecutable
	}
	return o.PlaceholderExecutable
}
