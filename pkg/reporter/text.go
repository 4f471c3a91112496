package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/cctok/internal/ui/pretty"
	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &TextReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, opts.TermWidth),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(runner.Stats{}))
		}
		return 0, nil
	}

	for i, file := range result.Files {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		r.writeFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		if r.opts.DetailedSummary {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return result.Stats.FilesErrored, nil
}

// writeFile writes a file header followed by the file's tokens or error.
func (r *TextReporter) writeFile(file runner.FileOutcome) {
	header := r.styles.FilePath.Render(displayPath(r.opts.WorkingDir, file.Path))
	if file.Source != "" {
		header += " " + r.styles.Dim.Render("["+string(file.Source)+"]")
	}
	fmt.Fprintln(r.bw, header)

	if file.Error != nil {
		msg := strings.ReplaceAll(file.Error.Error(), "\n", "\n  ")
		fmt.Fprintf(r.bw, "  %s %s\n", r.styles.Error.Render("error:"), msg)
		return
	}

	if r.opts.Highlight && file.Content != nil {
		out := r.styles.Highlight(file.Content, file.Tokens)
		fmt.Fprint(r.bw, out)
		if out != "" && !strings.HasSuffix(out, "\n") {
			fmt.Fprintln(r.bw)
		}
		return
	}

	fmt.Fprint(r.bw, r.table.FormatTokens(file.Content, file.Tokens))
}

// ReportCommands implements Reporter.
func (r *TextReporter) ReportCommands(_ context.Context, path string, cmds []compiledb.CompileCommand) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	name := r.styles.FilePath.Render(path)
	if len(cmds) == 0 {
		fmt.Fprintf(r.bw, "%s: %s\n", name, r.styles.Warning.Render("no compile commands"))
		return nil
	}

	fmt.Fprintf(r.bw, "%s: %d %s\n", name, len(cmds), pluralCommand(len(cmds)))
	for i, cmd := range cmds {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		r.writeField("directory:", r.styles.Argument.Render(cmd.WorkingDirectory))
		r.writeField("command:", shellJoin(cmd.Argv))
		if cmd.Output != "" {
			r.writeField("output:", r.styles.Argument.Render(cmd.Output))
		}
	}
	return nil
}

func (r *TextReporter) writeField(label, value string) {
	fmt.Fprintf(r.bw, "  %s %s\n", r.styles.Label.Render(fmt.Sprintf("%-10s", label)), value)
}

func pluralCommand(n int) string {
	if n == 1 {
		return "command"
	}
	return "commands"
}
