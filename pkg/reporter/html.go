package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
	"github.com/yaklabco/cctok/pkg/token"
)

//nolint:gochecknoglobals // Stateless, safe for concurrent use.
var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&apos;",
)

// HTMLReporter renders each file's source as a <pre> fragment in which
// every token line is wrapped in a span classed "lsp-type-<semantic type>".
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		r.writeFile(file)
	}

	return result.Stats.FilesErrored, nil
}

func (r *HTMLReporter) writeFile(file runner.FileOutcome) {
	fmt.Fprintf(r.bw, `<pre class="cctok" data-file="%s"`,
		htmlEscaper.Replace(displayPath(r.opts.WorkingDir, file.Path)))
	if file.Source != "" {
		fmt.Fprintf(r.bw, ` data-source="%s"`, file.Source)
	}

	if file.Error != nil {
		fmt.Fprintf(r.bw, " data-error=\"%s\"></pre>\n", htmlEscaper.Replace(file.Error.Error()))
		return
	}

	r.bw.WriteString(">")
	writeHighlightedHTML(r.bw, file.Content, file.Tokens)
	r.bw.WriteString("</pre>\n")
}

// ReportCommands implements Reporter.
func (r *HTMLReporter) ReportCommands(_ context.Context, path string, cmds []compiledb.CompileCommand) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	fmt.Fprintf(r.bw, `<pre class="cctok-commands" data-file="%s">`, htmlEscaper.Replace(path))
	for i, cmd := range cmds {
		if i > 0 {
			r.bw.WriteString("\n")
		}
		htmlEscaper.WriteString(r.bw, shellJoin(cmd.Argv))
	}
	r.bw.WriteString("</pre>\n")
	return nil
}

// writeHighlightedHTML escapes content into w, wrapping tokens in spans.
// A token spanning lines gets one span per line so that the newlines sit
// between spans. Tokens without a semantic type are written as plain text.
func writeHighlightedHTML(w io.Writer, content []byte, tokens []token.Token) {
	index := token.NewLineIndex(content)

	pos := 0
	for _, tok := range tokens {
		start, end, ok := index.Extent(tok)
		if !ok || start < pos {
			continue
		}
		htmlEscaper.WriteString(w, string(content[pos:start]))
		writeSpans(w, tok.Type.SemanticType(), string(content[start:end]))
		pos = end
	}
	htmlEscaper.WriteString(w, string(content[pos:]))
}

func writeSpans(w io.Writer, semanticType, text string) {
	if semanticType == "" {
		htmlEscaper.WriteString(w, text)
		return
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			io.WriteString(w, "\n")
		}
		if line == "" {
			continue
		}
		fmt.Fprintf(w, `<span class="lsp-type-%s">`, semanticType)
		htmlEscaper.WriteString(w, line)
		io.WriteString(w, "</span>")
	}
}
