package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cctok/pkg/token"
)

func TestLineIndexLocation(t *testing.T) {
	t.Parallel()

	index := token.NewLineIndex([]byte("ab\ncd\r\n\nx"))

	assert.Equal(t, 4, index.LineCount())

	tests := []struct {
		offset int
		want   token.FileLocation
	}{
		{0, token.FileLocation{Line: 1, Column: 1}},
		{1, token.FileLocation{Line: 1, Column: 2}},
		{2, token.FileLocation{Line: 1, Column: 3}}, // newline
		{3, token.FileLocation{Line: 2, Column: 1}},
		{5, token.FileLocation{Line: 2, Column: 3}}, // '\r'
		{7, token.FileLocation{Line: 3, Column: 1}},
		{8, token.FileLocation{Line: 4, Column: 1}},
		{9, token.FileLocation{Line: 4, Column: 2}}, // end of content
		{99, token.FileLocation{Line: 4, Column: 2}},
	}

	for _, tt := range tests {
		got := index.Location(tt.offset)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)

		if tt.offset <= 9 {
			back, ok := index.Offset(got)
			assert.True(t, ok, "offset %d", tt.offset)
			assert.Equal(t, tt.offset, back)
		}
	}
}

func TestLineIndexLoneCarriageReturn(t *testing.T) {
	t.Parallel()

	index := token.NewLineIndex([]byte("#define A 1\rint x;\r\ny\r"))

	assert.Equal(t, 4, index.LineCount())

	tests := []struct {
		offset int
		want   token.FileLocation
	}{
		{11, token.FileLocation{Line: 1, Column: 12}}, // lone '\r'
		{12, token.FileLocation{Line: 2, Column: 1}},
		{18, token.FileLocation{Line: 2, Column: 7}}, // '\r' of CRLF
		{19, token.FileLocation{Line: 2, Column: 8}},
		{20, token.FileLocation{Line: 3, Column: 1}},
		{22, token.FileLocation{Line: 4, Column: 1}},
	}

	for _, tt := range tests {
		got := index.Location(tt.offset)
		assert.Equal(t, tt.want, got, "offset %d", tt.offset)

		back, ok := index.Offset(got)
		assert.True(t, ok, "offset %d", tt.offset)
		assert.Equal(t, tt.offset, back)
	}

	assert.Equal(t, "#define A 1", string(index.LineContent(1)))
	assert.Equal(t, "int x;", string(index.LineContent(2)))
	assert.Equal(t, "y", string(index.LineContent(3)))
	assert.Empty(t, index.LineContent(4))
}

func TestLineIndexOffsetOutOfRange(t *testing.T) {
	t.Parallel()

	index := token.NewLineIndex([]byte("ab\ncd"))

	_, ok := index.Offset(token.FileLocation{Line: 0, Column: 1})
	assert.False(t, ok)
	_, ok = index.Offset(token.FileLocation{Line: 3, Column: 1})
	assert.False(t, ok)
	_, ok = index.Offset(token.FileLocation{Line: 1, Column: 5})
	assert.False(t, ok)
}

func TestLineIndexSpan(t *testing.T) {
	t.Parallel()

	content := []byte("x = \"é\";\n/* a\n b */")
	index := token.NewLineIndex(content)

	start, end := index.Span(0, 1)
	assert.Equal(t, token.FileLocation{Line: 1, Column: 1}, start)
	assert.Equal(t, token.FileLocation{Line: 1, Column: 1}, end)

	// A span ending in a two-byte rune: end addresses the rune's first byte.
	start, end = index.Span(5, 7)
	assert.Equal(t, token.FileLocation{Line: 1, Column: 6}, start)
	assert.Equal(t, token.FileLocation{Line: 1, Column: 6}, end)

	start, end = index.Span(10, len(content))
	assert.Equal(t, token.FileLocation{Line: 2, Column: 1}, start)
	assert.Equal(t, token.FileLocation{Line: 3, Column: 5}, end)
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	index := token.NewLineIndex([]byte("first\nsecond\n"))

	assert.Equal(t, "first", string(index.LineContent(1)))
	assert.Equal(t, "second", string(index.LineContent(2)))
	assert.Empty(t, index.LineContent(3))
	assert.Nil(t, index.LineContent(4))

	crlf := token.NewLineIndex([]byte("first\r\n\r\n"))
	assert.Equal(t, "first", string(crlf.LineContent(1)))
	assert.Empty(t, crlf.LineContent(2))
}

func TestLineIndexExtent(t *testing.T) {
	t.Parallel()

	content := []byte("x = \"é\";\n/* a\n b */")
	index := token.NewLineIndex(content)

	tests := []struct {
		name       string
		tok        token.Token
		start, end int
		ok         bool
	}{
		{
			name:  "multi-byte last character",
			tok:   token.Token{Start: token.FileLocation{Line: 1, Column: 5}, End: token.FileLocation{Line: 1, Column: 6}},
			start: 4, end: 7, ok: true,
		},
		{
			name:  "multi-line",
			tok:   token.Token{Start: token.FileLocation{Line: 2, Column: 1}, End: token.FileLocation{Line: 3, Column: 5}},
			start: 10, end: len(content), ok: true,
		},
		{
			name: "past end",
			tok:  token.Token{Start: token.FileLocation{Line: 3, Column: 1}, End: token.FileLocation{Line: 3, Column: 6}},
		},
		{
			name: "reversed",
			tok:  token.Token{Start: token.FileLocation{Line: 2, Column: 1}, End: token.FileLocation{Line: 1, Column: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end, ok := index.Extent(tt.tok)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.start, start)
				assert.Equal(t, tt.end, end)
				s, e := index.Span(start, end)
				assert.Equal(t, tt.tok.Start, s)
				assert.Equal(t, tt.tok.End, e)
			}
		})
	}
}
