package cli

import (
	"context"
	"errors"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
)

// Exit codes for cctok.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFilesFailed indicates some files could not be tokenized.
	ExitFilesFailed = 1

	// ExitNoCommands indicates lookup found no compile command for the file.
	ExitNoCommands = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitDatabaseError indicates a compilation database could not be loaded.
	ExitDatabaseError = 66

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

var (
	// ErrFilesFailed is returned when at least one file failed to tokenize.
	ErrFilesFailed = errors.New("some files failed")

	// ErrNoCommands is returned when lookup finds no compile command.
	ErrNoCommands = errors.New("no compile commands found")

	// ErrUsage wraps command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading errors.
	ErrConfig = errors.New("failed to load configuration")
)

// ExitCodeFromResult determines the exit code for a tokenizer run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitFilesFailed
	}
	return ExitSuccess
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFilesFailed):
		return ExitFilesFailed
	case errors.Is(err, ErrNoCommands):
		return ExitNoCommands
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, compiledb.ErrConstruction):
		return ExitDatabaseError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit code and needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrFilesFailed) || errors.Is(err, ErrNoCommands)
}
