package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
	"github.com/yaklabco/cctok/pkg/token"
	"github.com/yaklabco/cctok/pkg/tokenize"
)

type entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeDatabase(t *testing.T, dir string, entries ...entry) {
	t.Helper()
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	write(t, filepath.Join(dir, compiledb.FileName), string(data))
}

func types(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestRun_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRun_ResolvesFromDatabase(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "src", "a.c"), "int a;\n")
	write(t, filepath.Join(root, "src", "b.cpp"), "class B;\n")
	writeDatabase(t, filepath.Join(root, "build"),
		entry{Directory: filepath.Join(root, "src"), File: "a.c", Arguments: []string{"cc", "-c", "a.c"}},
		entry{Directory: filepath.Join(root, "src"), File: "b.cpp", Arguments: []string{"c++", "-c", "b.cpp"}},
	)

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"src"},
		Jobs:       2,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	a := result.Files[0]
	require.NoError(t, a.Error)
	assert.Equal(t, filepath.Join(root, "src", "a.c"), a.Path)
	assert.Equal(t, runner.SourceDatabase, a.Source)
	assert.Equal(t, []string{"cc", "-c", "a.c"}, a.Command.Argv)
	assert.Equal(t, []token.TokenType{token.Keyword, token.Unknown, token.Operator}, types(a.Tokens))

	b := result.Files[1]
	require.NoError(t, b.Error)
	assert.Equal(t, runner.SourceDatabase, b.Source)
	assert.Equal(t, token.Keyword, b.Tokens[0].Type)

	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 2, result.Stats.FilesBySource[runner.SourceDatabase])
	assert.Equal(t, 6, result.Stats.TokensTotal)
	assert.Equal(t, 2, result.Stats.TokensByType[token.Keyword])
}

func TestRun_BuildDirWins(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := filepath.Join(root, "a.c")
	write(t, src, "int a;\n")
	writeDatabase(t, root, entry{Directory: root, File: "a.c", Arguments: []string{"near", "a.c"}})
	custom := filepath.Join(root, "out", "debug")
	writeDatabase(t, custom, entry{Directory: root, File: "a.c", Arguments: []string{"custom", "a.c"}})

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"a.c"},
		BuildDir:   custom,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "custom", result.Files[0].Command.Executable())
}

func TestRun_FirstOfSeveralCommands(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "a.c"), "int a;\n")
	writeDatabase(t, root,
		entry{Directory: root, File: "a.c", Arguments: []string{"first", "a.c"}},
		entry{Directory: root, File: "a.c", Arguments: []string{"second", "a.c"}},
	)

	var logs bytes.Buffer
	run := runner.New(tokenize.New())
	run.Logger = log.New(&logs)

	result, err := run.Run(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "first", result.Files[0].Command.Executable())
	assert.Contains(t, logs.String(), "several commands")
}

func TestRun_FallbackAndFlags(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := filepath.Join(root, "a.c")
	write(t, src, "class C;\n")

	tok := tokenize.New()

	result, err := runner.New(tok).Run(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	fallback := result.Files[0]
	require.NoError(t, fallback.Error)
	assert.Equal(t, runner.SourceFallback, fallback.Source)
	assert.Equal(t, []string{"clang", "--", src}, fallback.Command.Argv)
	assert.Equal(t, token.Unknown, fallback.Tokens[0].Type, "class is not a C keyword")

	result, err = runner.New(tok).Run(context.Background(), runner.Options{
		WorkingDir:            root,
		UseFlags:              true,
		Flags:                 []string{"-x", "c++"},
		PlaceholderExecutable: "clang++",
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	flagged := result.Files[0]
	require.NoError(t, flagged.Error)
	assert.Equal(t, runner.SourceFlags, flagged.Source)
	assert.Equal(t, []string{"clang++", "-x", "c++", "--", src}, flagged.Command.Argv)
	assert.Equal(t, token.Keyword, flagged.Tokens[0].Type)
}

func TestRun_PerFileErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "good", "a.c"), "int a;\n")
	write(t, filepath.Join(root, "bad", "b.c"), "int b;\n")
	write(t, filepath.Join(root, "bad", compiledb.FileName), "{not json")

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"good", "bad"},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	bad := result.Files[0]
	assert.Equal(t, filepath.Join(root, "bad", "b.c"), bad.Path)
	require.ErrorIs(t, bad.Error, compiledb.ErrConstruction)
	assert.Nil(t, bad.Tokens)

	good := result.Files[1]
	require.NoError(t, good.Error)
	assert.Len(t, good.Tokens, 3)

	assert.True(t, result.HasFailures())
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
}

func TestRun_TokenizeErrorIsPerFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	notes := filepath.Join(root, "notes.txt")
	write(t, notes, "plain text\n")

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{
		WorkingDir: root,
		Paths:      []string{"notes.txt"},
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].Error, tokenize.ErrInvocation)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "a.c"), "int a;\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(tokenize.New()).Run(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_SerialMatchesParallel(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, name := range []string{"a.c", "b.c", "c.c", "d.c", "e.c", "f.c"} {
		write(t, filepath.Join(root, name), "#include <stdio.h>\nint "+name[:1]+" = 1; // "+name+"\n")
	}

	run := runner.New(tokenize.New())
	serial, err := run.Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	require.NoError(t, err)
	parallel, err := run.Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 4})
	require.NoError(t, err)

	require.Len(t, parallel.Files, len(serial.Files))
	for i := range serial.Files {
		assert.Equal(t, serial.Files[i].Path, parallel.Files[i].Path)
		assert.Equal(t, serial.Files[i].Tokens, parallel.Files[i].Tokens)
	}
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRun_KeepContent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write(t, filepath.Join(root, "a.c"), "int a;\n")

	result, err := runner.New(tokenize.New()).Run(context.Background(), runner.Options{WorkingDir: root, KeepContent: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "int a;\n", string(result.Files[0].Content))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := filepath.Join(root, "src", "a.c")
	write(t, src, "int a;\n")
	writeDatabase(t, filepath.Join(root, "build"),
		entry{Directory: root, File: "src/a.c", Arguments: []string{"cc", "-c", "src/a.c"}},
		entry{Directory: root, File: "src/a.c", Arguments: []string{"cc", "-O2", "-c", "src/a.c"}},
	)

	tests := []struct {
		name      string
		path      string
		wantCount int
	}{
		{name: "relative path", path: filepath.Join("src", "a.c"), wantCount: 2},
		{name: "absolute path", path: src, wantCount: 2},
		{name: "not listed", path: filepath.Join(root, "src", "b.c"), wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmds, database, err := runner.Lookup(context.Background(), runner.Options{WorkingDir: root}, tt.path)
			require.NoError(t, err)
			assert.Len(t, cmds, tt.wantCount)
			if tt.wantCount == 0 {
				assert.Empty(t, database)
				return
			}
			assert.Equal(t, filepath.Join(root, "build", compiledb.FileName), database)
			assert.Equal(t, []string{"cc", "-c", "src/a.c"}, cmds[0].Argv)
		})
	}
}
