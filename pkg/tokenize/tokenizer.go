// Package tokenize classifies the lexical tokens of C-family source files.
//
// A Tokenizer takes a compiler command line, has a frontend raw-lex the
// source file it names, and maps the result onto the token taxonomy of
// package token: keywords, operators, literals, comments, and whole
// preprocessor directives coalesced into single tokens.
//
// Tokenizers are immutable and safe for concurrent use. Every call lexes
// from scratch; nothing is cached between calls.
package tokenize

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/frontend"
	"github.com/yaklabco/cctok/pkg/token"
)

// DefaultPlaceholderExecutable is prepended to flag-only command lines.
const DefaultPlaceholderExecutable = "clang"

var (
	// ErrInvocation matches every failure where the frontend rejected the
	// command line, could not read the source, or terminated abnormally.
	ErrInvocation = frontend.ErrInvocation

	// ErrCancelled matches failures caused by the context being done.
	// Such errors also match the context's own error.
	ErrCancelled = errors.New("tokenization cancelled")
)

// InvocationError carries the frontend's reason and diagnostics.
type InvocationError = frontend.InvocationError

// Tokenizer produces classified tokens for compiler invocations.
type Tokenizer struct {
	frontend    frontend.Frontend
	placeholder string
	workDir     string
	logger      *log.Logger
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithFrontend sets the frontend used for raw lexing.
// The default is frontend.Default().
func WithFrontend(fe frontend.Frontend) Option {
	return func(t *Tokenizer) {
		if fe != nil {
			t.frontend = fe
		}
	}
}

// WithPlaceholderExecutable sets the executable that Tokenize prepends
// when isFull is false.
func WithPlaceholderExecutable(exe string) Option {
	return func(t *Tokenizer) {
		if exe != "" {
			t.placeholder = exe
		}
	}
}

// WithWorkingDirectory sets the directory Tokenize resolves relative
// paths against. The default is the process working directory at call time.
func WithWorkingDirectory(dir string) Option {
	return func(t *Tokenizer) {
		t.workDir = dir
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tokenizer) {
		t.logger = logger
	}
}

// New creates a Tokenizer.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		frontend:    frontend.Default(),
		placeholder: DefaultPlaceholderExecutable,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize classifies the tokens of the source file named by argv.
// When isFull is false, argv holds only compiler flags and the placeholder
// executable is prepended; otherwise argv[0] is the executable.
// On failure no tokens are returned.
func (t *Tokenizer) Tokenize(ctx context.Context, argv []string, isFull bool) ([]token.Token, error) {
	if !isFull {
		argv = append([]string{t.placeholder}, argv...)
	}

	workDir := t.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	return t.run(ctx, argv, workDir)
}

// TokenizeCommand is Tokenize(cmd.Argv, true) run in cmd.WorkingDirectory.
func (t *Tokenizer) TokenizeCommand(ctx context.Context, cmd compiledb.CompileCommand) ([]token.Token, error) {
	return t.run(ctx, cmd.Argv, cmd.WorkingDirectory)
}

func (t *Tokenizer) run(ctx context.Context, argv []string, workDir string) ([]token.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	inv, err := frontend.ParseInvocation(argv, workDir)
	if err != nil {
		return nil, err
	}

	unit, err := t.frontend.Lex(ctx, inv)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, cancelled(ctxErr)
	}
	if err != nil {
		if !errors.Is(err, ErrInvocation) {
			err = fmt.Errorf("%w: %w", ErrInvocation, err)
		}
		return nil, err
	}

	tokens := classify(unit)
	if err := token.Validate(tokens); err != nil {
		return nil, &InvocationError{Reason: "frontend produced an inconsistent token stream", Err: err}
	}

	if t.logger != nil {
		t.logger.Debug("tokenized", "path", unit.Path, "language", unit.Language, "raw", len(unit.Tokens), "tokens", len(tokens))
	}
	return tokens, nil
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
