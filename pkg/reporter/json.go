package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
)

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result, r.opts.WorkingDir)
	if err := r.encode(output); err != nil {
		return 0, err
	}

	return output.Summary.FilesErrored, nil
}

// ReportCommands implements Reporter.
func (r *JSONReporter) ReportCommands(_ context.Context, path string, cmds []compiledb.CompileCommand) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	return r.encode(buildLookupOutput(path, cmds))
}

func (r *JSONReporter) encode(v any) error {
	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
