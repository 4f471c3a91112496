package reporter

import (
	"testing"

	"github.com/google/shlex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want string
	}{
		{name: "plain", argv: []string{"clang", "-c", "-o", "out/a.o", "a.c"}, want: "clang -c -o out/a.o a.c"},
		{name: "space", argv: []string{"cc", "-DNAME=a b"}, want: "cc '-DNAME=a b'"},
		{name: "empty argument", argv: []string{"cc", ""}, want: "cc ''"},
		{name: "single quote", argv: []string{"cc", "-DQ='x'"}, want: `cc '-DQ='\''x'\'''`},
		{name: "double quote", argv: []string{"cc", `-DS="s"`}, want: `cc '-DS="s"'`},
		{name: "hash", argv: []string{"cc", "#x"}, want: "cc '#x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := shellJoin(tt.argv)
			assert.Equal(t, tt.want, got)

			split, err := shlex.Split(got)
			require.NoError(t, err)
			if tt.name != "empty argument" {
				assert.Equal(t, tt.argv, split)
			}
		})
	}
}
