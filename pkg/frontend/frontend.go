// Package frontend performs raw lexing of C-family source files.
//
// A Frontend receives a parsed compiler Invocation and returns the file's
// primitive lexical units without macro expansion: identifiers,
// punctuators, literals, comments and stray bytes. Whitespace and line
// splices produce no units. Classification into the public token taxonomy
// happens in package tokenize.
//
// Both implementations keep all state local to a call: Builtin lexes in
// process with a fresh scanner per call, and Clang starts one compiler
// process per call. Neither needs locking, so one value may serve many
// goroutines.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/cctok/pkg/langdetect"
)

// ErrInvocation is matched by every error where the frontend rejected the
// arguments, could not read the source, or terminated abnormally.
var ErrInvocation = errors.New("frontend invocation failed")

// Frontend raw-lexes the source file named by an invocation.
type Frontend interface {
	// Lex returns the primitive lexical units of inv's source file.
	// It must return promptly with ctx's error once ctx is done.
	Lex(ctx context.Context, inv Invocation) (*Unit, error)
}

// RawKind classifies a primitive lexical unit.
type RawKind uint8

// Raw unit kinds.
const (
	RawUnknown RawKind = iota
	RawIdentifier
	RawPunctuator
	RawNumeric
	RawString
	RawChar
	RawComment
)

//nolint:gochecknoglobals // Read-only lookup table.
var rawKindNames = [...]string{
	RawUnknown:    "unknown",
	RawIdentifier: "identifier",
	RawPunctuator: "punctuator",
	RawNumeric:    "numeric",
	RawString:     "string",
	RawChar:       "char",
	RawComment:    "comment",
}

// String returns the kind name.
func (k RawKind) String() string {
	if int(k) < len(rawKindNames) {
		return rawKindNames[k]
	}
	return fmt.Sprintf("RawKind(%d)", uint8(k))
}

// RawToken is one primitive lexical unit.
type RawToken struct {
	Kind RawKind

	// Offset is the byte offset of the first character.
	Offset int

	// Len is the byte length, including any line splices inside the unit.
	Len int

	// Text is the unit's spelling with line splices removed.
	Text string

	// StartOfLine is set on the first unit of each logical line.
	StartOfLine bool
}

// End returns the offset just past the unit.
func (t RawToken) End() int {
	return t.Offset + t.Len
}

// Unit is the raw lexing result for one source file.
type Unit struct {
	// Path is the absolute path of the lexed file.
	Path string

	// Language is the language the file was lexed as.
	Language langdetect.Language

	// Standard is the invocation's -std value, or "" for the compiler
	// default.
	Standard string

	// Content is the file content the offsets refer to.
	Content []byte

	// Tokens are the raw units in source order.
	Tokens []RawToken
}

// InvocationError carries the reason a frontend rejected an invocation and
// any diagnostics it printed. It matches ErrInvocation.
type InvocationError struct {
	// Reason is a one-line summary.
	Reason string

	// Diagnostics holds the frontend's own messages, if any.
	Diagnostics []string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements error.
func (e *InvocationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvocation.Error())
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	for _, diag := range e.Diagnostics {
		b.WriteString("\n  ")
		b.WriteString(diag)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *InvocationError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvocation.
func (e *InvocationError) Is(target error) bool {
	return target == ErrInvocation
}

func invocationErrorf(cause error, format string, args ...any) error {
	return &InvocationError{Reason: fmt.Sprintf(format, args...), Err: cause}
}

// Default returns the built-in frontend.
func Default() Frontend {
	return Builtin{}
}
