package frontend

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClangArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "outputs and actions dropped",
			argv: []string{"clang", "-c", "-o", "a.o", "-Iinc", "-MD", "-MF", "a.d", "-x", "c", "a.c"},
			want: []string{"-Iinc", "-x", "c", "a.c",
				"-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-dump-raw-tokens"},
		},
		{
			name: "joined outputs dropped",
			argv: []string{"clang", "-oa.o", "-MFa.d", "-objcmt-migrate-literals", "a.m"},
			want: []string{"-objcmt-migrate-literals", "a.m",
				"-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-dump-raw-tokens"},
		},
		{
			name: "flags placed before double dash",
			argv: []string{"clang", "-c", "--", "a.c"},
			want: []string{"-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-dump-raw-tokens", "--", "a.c"},
		},
		{
			name: "values of kept flags are not reinterpreted",
			argv: []string{"clang", "-Xclang", "-c", "a.c"},
			want: []string{"-Xclang", "-c", "a.c",
				"-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-dump-raw-tokens"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, clangArgs(Invocation{Argv: tt.argv}))
		})
	}
}

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	stderr := "clang: warning: argument unused\nclang: error: unknown argument: '-fbogus'\n"
	assert.Equal(t, []string{"clang: error: unknown argument: '-fbogus'"}, diagnostics([]byte(stderr)))
	assert.Equal(t, []string{"something odd"}, diagnostics([]byte("\nsomething odd\n")))
}

// requireClang skips unless CCTOK_CLANG_TESTS=1 and clang is installed.
func requireClang(t *testing.T) string {
	t.Helper()

	if os.Getenv("CCTOK_CLANG_TESTS") != "1" {
		t.Skip("set CCTOK_CLANG_TESTS=1 to run tests against a real clang")
	}
	path, err := exec.LookPath(DefaultClangPath)
	if err != nil {
		t.Skip("clang not installed")
	}
	return path
}

func TestClangMatchesBuiltin(t *testing.T) {
	t.Parallel()
	clang := requireClang(t)

	dir := t.TempDir()
	src := "int main(void) {\n  return 0; // done\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), []byte(src), 0644))

	inv, err := ParseInvocation([]string{"clang", "-c", "a.c"}, dir)
	require.NoError(t, err)

	fromClang, err := Clang{Path: clang}.Lex(context.Background(), inv)
	require.NoError(t, err)
	fromBuiltin, err := Builtin{}.Lex(context.Background(), inv)
	require.NoError(t, err)

	assert.Equal(t, fromBuiltin.Tokens, fromClang.Tokens)
}

func TestClangRejectsUnknownFlag(t *testing.T) {
	t.Parallel()
	clang := requireClang(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.c"), []byte("int x;\n"), 0644))

	inv, err := ParseInvocation([]string{"clang", "-fcctok-no-such-flag", "a.c"}, dir)
	require.NoError(t, err)

	_, err = Clang{Path: clang}.Lex(context.Background(), inv)
	require.ErrorIs(t, err, ErrInvocation)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.NotEmpty(t, invErr.Diagnostics)
}
