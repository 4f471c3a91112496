package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/reporter"
	"github.com/yaklabco/cctok/pkg/runner"
	"github.com/yaklabco/cctok/pkg/token"
)

func tok(typ token.TokenType, line, startCol, endCol int) token.Token {
	return token.Token{
		Start: token.FileLocation{Line: line, Column: startCol},
		End:   token.FileLocation{Line: line, Column: endCol},
		Type:  typ,
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/w/src/a.c",
				Command: compiledb.CompileCommand{
					Argv:             []string{"clang", "-c", "src/a.c"},
					WorkingDirectory: "/w",
					SourceFile:       "/w/src/a.c",
				},
				Source: runner.SourceDatabase,
				Tokens: []token.Token{
					tok(token.Keyword, 1, 1, 3),
					tok(token.Unknown, 1, 5, 5),
					tok(token.Operator, 1, 6, 6),
				},
				Content: []byte("int x;\n"),
			},
			{
				Path:  "/w/src/b.c",
				Error: errors.New("frontend invocation failed: no input files"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2,
			FilesProcessed:  1,
			FilesErrored:    1,
			FilesBySource:   map[runner.CommandSource]int{runner.SourceDatabase: 1},
			TokensTotal:     3,
			TokensByType: map[token.TokenType]int{
				token.Keyword:  1,
				token.Unknown:  1,
				token.Operator: 1,
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "msgpack", input: "msgpack", want: reporter.FormatMsgpack},
		{name: "html", input: "html", want: reporter.FormatHTML},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		want    any
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText, want: &reporter.TextReporter{}},
		{name: "json reporter", format: reporter.FormatJSON, want: &reporter.JSONReporter{}},
		{name: "msgpack reporter", format: reporter.FormatMsgpack, want: &reporter.MsgpackReporter{}},
		{name: "html reporter", format: reporter.FormatHTML, want: &reporter.HTMLReporter{}},
		{name: "empty defaults to text", format: "", want: &reporter.TextReporter{}},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, rep)
		})
	}
}

func TestTextReporter_Table(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/w",
	})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	out := buf.String()
	assert.Contains(t, out, "src/a.c [database]\n")
	assert.Contains(t, out, "RANGE      TYPE                    TEXT\n")
	assert.Contains(t, out, "1:1-1:3    keyword                 int\n")
	assert.Contains(t, out, "1:6-1:6    operator                ;\n")
	assert.Contains(t, out, "src/b.c\n  error: frontend invocation failed: no input files\n")
	assert.Contains(t, out, "\n3 tokens in 1 file, 1 file failed (1 from database)\n")
	assert.NotContains(t, out, "/w/src")
}

func TestTextReporter_Highlight(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Files = result.Files[:1]

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:     &buf,
		Color:      "never",
		Highlight:  true,
		WorkingDir: "/w",
	})

	_, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, "src/a.c [database]\nint x;\n", buf.String())
}

func TestTextReporter_DetailedSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:          &buf,
		Color:           "never",
		ShowSummary:     true,
		DetailedSummary: true,
	})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  Files discovered:    2\n")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		showSummary bool
		want        string
	}{
		{name: "with summary", showSummary: true, want: "No files to tokenize.\n"},
		{name: "without summary", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep := reporter.NewTextReporter(reporter.Options{
				Writer:      &buf,
				Color:       "never",
				ShowSummary: tt.showSummary,
			})

			failed, err := rep.Report(context.Background(), &runner.Result{})
			require.NoError(t, err)
			assert.Zero(t, failed)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTextReporter_ReportCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmds []compiledb.CompileCommand
		want string
	}{
		{
			name: "one command",
			cmds: []compiledb.CompileCommand{{
				Argv:             []string{"clang", "-c", "-DNAME=a b", "src/a.c"},
				WorkingDirectory: "/w/build",
				SourceFile:       "/w/src/a.c",
				Output:           "a.o",
			}},
			want: "src/a.c: 1 command\n" +
				"  directory: /w/build\n" +
				"  command:   clang -c '-DNAME=a b' src/a.c\n" +
				"  output:    a.o\n",
		},
		{
			name: "several commands",
			cmds: []compiledb.CompileCommand{
				{Argv: []string{"cc", "a.c"}, WorkingDirectory: "/w"},
				{Argv: []string{"cc", "-O2", "a.c"}, WorkingDirectory: "/w"},
			},
			want: "src/a.c: 2 commands\n" +
				"  directory: /w\n" +
				"  command:   cc a.c\n" +
				"\n" +
				"  directory: /w\n" +
				"  command:   cc -O2 a.c\n",
		},
		{
			name: "no commands",
			want: "src/a.c: no compile commands\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})
			require.NoError(t, rep.ReportCommands(context.Background(), "src/a.c", tt.cmds))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, WorkingDir: "/w"})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var out reporter.Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assertOutput(t, &out)

	assert.Contains(t, buf.String(), `"semanticType": "keyword"`)
	assert.Contains(t, buf.String(), `"startLocation": {`)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.0.0","files":[],"summary":{"filesDiscovered":0,"filesProcessed":0,"filesErrored":0,"tokens":0,"bySource":{},"byType":{}}}`+"\n",
		buf.String())
}

func TestJSONReporter_ReportCommands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	cmds := []compiledb.CompileCommand{{
		Argv:             []string{"cc", "-c", "a.c"},
		WorkingDirectory: "/w",
		SourceFile:       "/w/a.c",
	}}
	require.NoError(t, rep.ReportCommands(context.Background(), "a.c", cmds))
	assert.Equal(t,
		`{"version":"1.0.0","file":"a.c","commands":[{"argv":["cc","-c","a.c"],"workingDirectory":"/w","sourceFile":"/w/a.c"}]}`+"\n",
		buf.String())
}

func TestMsgpackReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewMsgpackReporter(reporter.Options{Writer: &buf, WorkingDir: "/w"})

	failed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	var out reporter.Output
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &out))
	assertOutput(t, &out)
}

func TestMsgpackReporter_ReportCommands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewMsgpackReporter(reporter.Options{Writer: &buf})

	cmds := []compiledb.CompileCommand{{
		Argv:             []string{"cc", "a.c"},
		WorkingDirectory: "/w",
		SourceFile:       "/w/a.c",
		Output:           "a.o",
	}}
	require.NoError(t, rep.ReportCommands(context.Background(), "a.c", cmds))

	var out reporter.LookupOutput
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "a.c", out.File)
	require.Len(t, out.Commands, 1)
	assert.True(t, cmds[0].Equal(out.Commands[0]))
}

func assertOutput(t *testing.T, out *reporter.Output) {
	t.Helper()

	assert.Equal(t, reporter.OutputVersion, out.Version)
	require.Len(t, out.Files, 2)

	a := out.Files[0]
	assert.Equal(t, "src/a.c", a.Path)
	assert.Equal(t, "database", a.Source)
	require.NotNil(t, a.Command)
	assert.Equal(t, []string{"clang", "-c", "src/a.c"}, a.Command.Argv)
	assert.Empty(t, a.Error)
	require.Len(t, a.Tokens, 3)
	assert.Equal(t, reporter.TokenResult{
		Start:        token.FileLocation{Line: 1, Column: 1},
		End:          token.FileLocation{Line: 1, Column: 3},
		Type:         "keyword",
		SemanticType: "keyword",
	}, a.Tokens[0])
	assert.Equal(t, "unknown", a.Tokens[1].Type)
	assert.Empty(t, a.Tokens[1].SemanticType)

	b := out.Files[1]
	assert.Equal(t, "src/b.c", b.Path)
	assert.Nil(t, b.Command)
	assert.Empty(t, b.Tokens)
	assert.Equal(t, "frontend invocation failed: no input files", b.Error)

	assert.Equal(t, reporter.Summary{
		FilesDiscovered: 2,
		FilesProcessed:  1,
		FilesErrored:    1,
		Tokens:          3,
		BySource:        map[string]int{"database": 1},
		ByType:          map[string]int{"keyword": 1, "unknown": 1, "operator": 1},
	}, out.Summary)
}

func TestHTMLReporter(t *testing.T) {
	t.Parallel()

	content := "s = \"<&>'\";\n/* a\n b */ x\n"
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:   "/w/src/a.c",
				Source: runner.SourceDatabase,
				Tokens: []token.Token{
					tok(token.Unknown, 1, 1, 1),
					tok(token.Operator, 1, 3, 3),
					tok(token.LiteralString, 1, 5, 10),
					tok(token.Operator, 1, 11, 11),
					{
						Start: token.FileLocation{Line: 2, Column: 1},
						End:   token.FileLocation{Line: 3, Column: 5},
						Type:  token.Comment,
					},
					tok(token.Unknown, 3, 7, 7),
				},
				Content: []byte(content),
			},
			{
				Path:  "/w/src/<b>.c",
				Error: errors.New(`cannot read "b.c"`),
			},
		},
		Stats: runner.Stats{FilesErrored: 1},
	}

	var buf bytes.Buffer
	rep := reporter.NewHTMLReporter(reporter.Options{Writer: &buf, WorkingDir: "/w"})

	failed, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)

	want := `<pre class="cctok" data-file="src/a.c" data-source="database">` +
		`s <span class="lsp-type-operator">=</span> ` +
		`<span class="lsp-type-string">&quot;&lt;&amp;&gt;&apos;&quot;</span>` +
		`<span class="lsp-type-operator">;</span>` + "\n" +
		`<span class="lsp-type-comment">/* a</span>` + "\n" +
		`<span class="lsp-type-comment"> b */</span> x` + "\n" +
		"</pre>\n" +
		`<pre class="cctok" data-file="src/&lt;b&gt;.c" data-error="cannot read &quot;b.c&quot;"></pre>` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestHTMLReporter_SkipsTokensOutsideContent(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path: "a.c",
			Tokens: []token.Token{
				tok(token.Keyword, 1, 1, 3),
				tok(token.Keyword, 1, 2, 3),
				tok(token.Keyword, 9, 1, 1),
			},
			Content: []byte("int"),
		}},
	}

	var buf bytes.Buffer
	_, err := reporter.NewHTMLReporter(reporter.Options{Writer: &buf}).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, `<pre class="cctok" data-file="a.c"><span class="lsp-type-keyword">int</span></pre>`+"\n", buf.String())
}

func TestHTMLReporter_ReportCommands(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewHTMLReporter(reporter.Options{Writer: &buf})

	cmds := []compiledb.CompileCommand{
		{Argv: []string{"cc", "-DX=<1>", "-c", "a.c"}},
		{Argv: []string{"cc", "-c", "a.c"}},
	}
	require.NoError(t, rep.ReportCommands(context.Background(), "/w/a.c", cmds))
	assert.Equal(t,
		`<pre class="cctok-commands" data-file="/w/a.c">cc &apos;-DX=&lt;1&gt;&apos; -c a.c`+"\n"+`cc -c a.c</pre>`+"\n",
		buf.String())
}
