package frontend_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cctok/pkg/frontend"
	"github.com/yaklabco/cctok/pkg/langdetect"
)

type unit struct {
	Kind frontend.RawKind
	Text string
}

func scan(t *testing.T, src string, lang langdetect.Language) []frontend.RawToken {
	t.Helper()

	tokens, err := frontend.Scan(context.Background(), []byte(src), lang)
	require.NoError(t, err)
	return tokens
}

func units(tokens []frontend.RawToken) []unit {
	out := make([]unit, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, unit{tok.Kind, tok.Text})
	}
	return out
}

func TestScanUnits(t *testing.T) {
	t.Parallel()

	const (
		id      = frontend.RawIdentifier
		punct   = frontend.RawPunctuator
		num     = frontend.RawNumeric
		str     = frontend.RawString
		char    = frontend.RawChar
		comment = frontend.RawComment
		unknown = frontend.RawUnknown
	)

	tests := []struct {
		name string
		src  string
		lang langdetect.Language
		want []unit
	}{
		{"declaration", "int x = 42;", langdetect.C,
			[]unit{{id, "int"}, {id, "x"}, {punct, "="}, {num, "42"}, {punct, ";"}}},
		{"include header name", "#include <stdio.h>\n", langdetect.C,
			[]unit{{punct, "#"}, {id, "include"}, {str, "<stdio.h>"}}},
		{"comparison is not a header name", "a<b>c", langdetect.C,
			[]unit{{id, "a"}, {punct, "<"}, {id, "b"}, {punct, ">"}, {id, "c"}}},
		{"longest punctuator", "x->y...z<<=1", langdetect.C,
			[]unit{{id, "x"}, {punct, "->"}, {id, "y"}, {punct, "..."}, {id, "z"}, {punct, "<<="}, {num, "1"}}},
		{"preprocessing numbers", "1.5e+3f 0x1p-2 .5", langdetect.C,
			[]unit{{num, "1.5e+3f"}, {num, "0x1p-2"}, {num, ".5"}}},
		{"digit separators", "1'000'000", langdetect.CPP,
			[]unit{{num, "1'000'000"}}},
		{"literals", `"a\"b" 'c' L"w" u8"x" U'y'`, langdetect.C,
			[]unit{{str, `"a\"b"`}, {char, "'c'"}, {str, `L"w"`}, {str, `u8"x"`}, {char, "U'y'"}}},
		{"unterminated string", "\"abc  \nx", langdetect.C,
			[]unit{{unknown, `"abc`}, {id, "x"}}},
		{"comments", "// c\nx /* a\nb */ y", langdetect.C,
			[]unit{{comment, "// c"}, {id, "x"}, {comment, "/* a\nb */"}, {id, "y"}}},
		{"unterminated block comment", "x /* abc\n\n", langdetect.C,
			[]unit{{id, "x"}, {comment, "/* abc"}}},
		{"splice inside identifier", "ab\\\ncd", langdetect.C,
			[]unit{{id, "abcd"}}},
		{"line comment continues over splice", "// a\\\nb\nc", langdetect.C,
			[]unit{{comment, "// ab"}, {id, "c"}}},
		{"raw string", `R"x(a)"b)x" y`, langdetect.CPP,
			[]unit{{str, `R"x(a)"b)x"`}, {id, "y"}}},
		{"raw string prefix in C", `R"(a)"`, langdetect.C,
			[]unit{{id, "R"}, {str, `"(a)"`}}},
		{"unterminated raw string", "R\"x(abc\n\n", langdetect.CPP,
			[]unit{{unknown, "R\"x(abc"}}},
		{"scope operator in C", "a::b", langdetect.C,
			[]unit{{id, "a"}, {punct, ":"}, {punct, ":"}, {id, "b"}}},
		{"scope operator in C++", "a::b", langdetect.CPP,
			[]unit{{id, "a"}, {punct, "::"}, {id, "b"}}},
		{"template of global name", "v<::x>", langdetect.CPP,
			[]unit{{id, "v"}, {punct, "<"}, {punct, "::"}, {id, "x"}, {punct, ">"}}},
		{"spaceship", "a<=>b", langdetect.CPP,
			[]unit{{id, "a"}, {punct, "<=>"}, {id, "b"}}},
		{"digraph hash", "%:define X", langdetect.C,
			[]unit{{punct, "%:"}, {id, "define"}, {id, "X"}}},
		{"at sign in C", "@x", langdetect.C,
			[]unit{{unknown, "@"}, {id, "x"}}},
		{"at sign in Objective-C", "@interface", langdetect.ObjC,
			[]unit{{punct, "@"}, {id, "interface"}}},
		{"stray characters", "`\\", langdetect.C,
			[]unit{{unknown, "`"}, {unknown, "\\"}}},
		{"byte order mark", "\xEF\xBB\xBFint", langdetect.C,
			[]unit{{id, "int"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, units(scan(t, tt.src, tt.lang)))
		})
	}
}

func TestScanOffsets(t *testing.T) {
	t.Parallel()

	tokens := scan(t, "ab\\\ncd /* x */\n\"s\"  \n", langdetect.C)

	require.Len(t, tokens, 3)
	assert.Equal(t, 0, tokens[0].Offset)
	assert.Equal(t, 6, tokens[0].Len)
	assert.Equal(t, 7, tokens[1].Offset)
	assert.Equal(t, 7, tokens[1].Len)
	assert.Equal(t, 15, tokens[2].Offset)
	assert.Equal(t, 3, tokens[2].Len)
	assert.Equal(t, 18, tokens[2].End())
}

func TestScanStartOfLine(t *testing.T) {
	t.Parallel()

	tokens := scan(t, "a\n b +\\\nc\n#x", langdetect.C)

	got := make([]bool, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.StartOfLine)
	}
	assert.Equal(t, []bool{true, true, false, false, true, false}, got)
}

func TestScanCoversEveryNonBlankByte(t *testing.T) {
	t.Parallel()

	src := "#define MAX(a, b) ((a) > (b) ? (a) : (b)) \\\n  /* tail */\n" +
		"static const char *s = \"x\\ty\";\nint main(void) { return MAX(1, 2); } // end\n"
	tokens := scan(t, src, langdetect.C)

	covered := make([]bool, len(src))
	prevEnd := 0
	for _, tok := range tokens {
		require.GreaterOrEqual(t, tok.Offset, prevEnd, "units overlap at %d", tok.Offset)
		for i := tok.Offset; i < tok.End(); i++ {
			covered[i] = true
		}
		prevEnd = tok.End()
	}
	for i, c := range []byte(src) {
		if c == ' ' || c == '\n' || c == '\\' && i+1 < len(src) && src[i+1] == '\n' {
			continue
		}
		assert.True(t, covered[i], "byte %d (%q) not covered", i, c)
	}
}

func TestScanCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tokens, err := frontend.Scan(ctx, []byte("int x;"), langdetect.C)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, tokens)
}

func TestRawKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "identifier", frontend.RawIdentifier.String())
	assert.Equal(t, "comment", frontend.RawComment.String())
	assert.Equal(t, "RawKind(42)", frontend.RawKind(42).String())
}
