package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
)

// MsgpackReporter writes results as a single MessagePack document with the
// same shape as the JSON output.
type MsgpackReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewMsgpackReporter creates a new MessagePack reporter.
func NewMsgpackReporter(opts Options) *MsgpackReporter {
	return &MsgpackReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MsgpackReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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
func (r *MsgpackReporter) ReportCommands(_ context.Context, path string, cmds []compiledb.CompileCommand) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	return r.encode(buildLookupOutput(path, cmds))
}

func (r *MsgpackReporter) encode(v any) error {
	encoder := msgpack.NewEncoder(r.bw)
	encoder.SetSortMapKeys(true)
	encoder.UseCompactInts(true)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode msgpack: %w", err)
	}
	return nil
}
