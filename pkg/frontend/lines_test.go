package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpliceLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want int
	}{
		{"lf", "\\\nx", 2},
		{"crlf", "\\\r\nx", 3},
		{"lone cr", "\\\rx", 2},
		{"trailing whitespace", "\\ \t\nx", 4},
		{"backslash at end", "\\", 0},
		{"escape", "\\n", 0},
		{"not a backslash", "a\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, spliceLen([]byte(tt.src), 0))
		})
	}
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, isBlank(nil))
	assert.True(t, isBlank([]byte(" \t\r\n\\\n  ")))
	assert.False(t, isBlank([]byte("  x ")))
	assert.False(t, isBlank([]byte("\\")))
}

func TestTrimBlankSuffix(t *testing.T) {
	t.Parallel()

	src := []byte("abc \\\n \n")
	assert.Equal(t, 3, trimBlankSuffix(src, 0, len(src)))
	assert.Equal(t, 2, trimBlankSuffix(src, 1, len(src)))
	assert.Equal(t, 0, trimBlankSuffix(src, 3, len(src)))
	assert.Equal(t, 5, trimBlankSuffix([]byte("ab c\\"), 0, 5), "a lone backslash is not a splice")
}

func TestMarkLineStarts(t *testing.T) {
	t.Parallel()

	content := []byte("a b\n  c\\\n d\r\ne")
	tokens := []RawToken{
		{Offset: 0, Len: 1},
		{Offset: 2, Len: 1},
		{Offset: 6, Len: 1},
		{Offset: 10, Len: 1},
		{Offset: 13, Len: 1},
	}

	markLineStarts(content, tokens)

	got := make([]bool, 0, len(tokens))
	for _, tok := range tokens {
		got = append(got, tok.StartOfLine)
	}
	assert.Equal(t, []bool{true, false, true, false, true}, got)
}

func TestUnsplice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abcd", unsplice([]byte("ab\\\ncd")))
	assert.Equal(t, "ab", unsplice([]byte("a\\  \r\nb")))
	assert.Equal(t, `a\b`, unsplice([]byte(`a\b`)))
}
