package runner

import (
	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/token"
)

// FileOutcome is the result of tokenizing one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Command is the compile command the file was tokenized with. It is
	// zero when resolution failed.
	Command compiledb.CompileCommand

	// Source tells where Command came from.
	Source CommandSource

	// Tokens are the file's tokens. Nil when Error is set.
	Tokens []token.Token

	// Content is the file as read after tokenizing, when Options.KeepContent
	// is set. Renderers use it to show token text.
	Content []byte

	// Error is set if the file could not be resolved or tokenized.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files tokenized successfully.
	FilesProcessed int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// FilesBySource counts processed files per command source.
	FilesBySource map[CommandSource]int

	// TokensTotal is the number of tokens across all files.
	TokensTotal int

	// TokensByType counts tokens per type.
	TokensByType map[token.TokenType]int
}

// Result is the overall runner result.
type Result struct {
	// Files contains one outcome per processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{
		FilesBySource: make(map[CommandSource]int),
		TokensByType:  make(map[token.TokenType]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.FilesBySource[outcome.Source]++
	r.Stats.TokensTotal += len(outcome.Tokens)
	for _, tok := range outcome.Tokens {
		r.Stats.TokensByType[tok.Type]++
	}
}
