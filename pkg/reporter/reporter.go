// Package reporter writes tokenizer results and compile command lookups
// as styled text, JSON, MessagePack or HTML.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
	_ Reporter = (*MsgpackReporter)(nil)
	_ Reporter = (*HTMLReporter)(nil)
)

// Reporter formats and writes results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files that failed and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)

	// ReportCommands writes the compile commands found for path.
	ReportCommands(ctx context.Context, path string, cmds []compiledb.CompileCommand) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatMsgpack:
		return NewMsgpackReporter(opts), nil
	case FormatHTML:
		return NewHTMLReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath makes path relative to workDir when it lies beneath it.
func displayPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
