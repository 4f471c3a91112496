package token

import (
	"sort"
	"unicode/utf8"
)

// LineIndex maps byte offsets in a source buffer to one-based locations.
// Lines are terminated by LF, CRLF or a lone CR, as the lexer sees them.
type LineIndex struct {
	content []byte
	starts  []int
}

// NewLineIndex builds a line table for content.
func NewLineIndex(content []byte) *LineIndex {
	starts := []int{0}
	for idx, char := range content {
		switch {
		case char == '\n':
			starts = append(starts, idx+1)
		case char == '\r' && (idx+1 == len(content) || content[idx+1] != '\n'):
			starts = append(starts, idx+1)
		}
	}
	return &LineIndex{content: content, starts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Location converts a byte offset to a one-based location.
// Offsets past the end clamp to the position just after the last byte.
func (x *LineIndex) Location(offset int) FileLocation {
	if offset < 0 {
		offset = 0
	}
	if offset > len(x.content) {
		offset = len(x.content)
	}

	// Binary search for the last line starting at or before offset.
	lineIdx := sort.Search(len(x.starts), func(i int) bool {
		return x.starts[i] > offset
	}) - 1

	return FileLocation{Line: lineIdx + 1, Column: offset - x.starts[lineIdx] + 1}
}

// Offset converts a one-based location to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (x *LineIndex) Offset(loc FileLocation) (int, bool) {
	if loc.Line < 1 || loc.Line > len(x.starts) || loc.Column < 1 {
		return 0, false
	}

	lineEnd := len(x.content)
	if loc.Line < len(x.starts) {
		lineEnd = x.starts[loc.Line] - 1
	}

	offset := x.starts[loc.Line-1] + loc.Column - 1
	// Column may point at the newline itself but not beyond it.
	if offset > lineEnd {
		return 0, false
	}
	return offset, true
}

// Span returns the inclusive start and end locations of content[start:end].
// The end location addresses the first byte of the last character in the span.
func (x *LineIndex) Span(start, end int) (FileLocation, FileLocation) {
	if end <= start {
		loc := x.Location(start)
		return loc, loc
	}
	_, size := utf8.DecodeLastRune(x.content[start:end])
	if size < 1 {
		size = 1
	}
	return x.Location(start), x.Location(end - size)
}

// LineContent returns the content of a one-based line, excluding the line
// terminator. Returns nil if the line number is out of range.
func (x *LineIndex) LineContent(line int) []byte {
	if line < 1 || line > len(x.starts) {
		return nil
	}
	start := x.starts[line-1]
	end := len(x.content)
	if line < len(x.starts) {
		end = x.starts[line] - 1
		if end > start && x.content[end] == '\n' && x.content[end-1] == '\r' {
			end--
		}
	}
	return x.content[start:end]
}

// Extent is the inverse of Span: it returns the half-open byte range
// covered by tok. ok is false when either location is out of range or the
// span is reversed.
func (x *LineIndex) Extent(tok Token) (start, end int, ok bool) {
	start, ok = x.Offset(tok.Start)
	if !ok {
		return 0, 0, false
	}
	last, ok := x.Offset(tok.End)
	if !ok || last < start || last >= len(x.content) {
		return 0, 0, false
	}
	_, size := utf8.DecodeRune(x.content[last:])
	return start, last + size, true
}
