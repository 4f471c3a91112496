package token

import "fmt"

// FileLocation is a 1-based line and column in a source file.
// Column counts bytes, not runes.
type FileLocation struct {
	Line   int `json:"line" msgpack:"line"`
	Column int `json:"column" msgpack:"column"`
}

// IsValid returns true if this location has valid (positive) values.
func (l FileLocation) IsValid() bool {
	return l.Line > 0 && l.Column > 0
}

// Compare orders locations by line, then column.
// It returns -1, 0 or +1.
func (l FileLocation) Compare(other FileLocation) int {
	switch {
	case l.Line < other.Line:
		return -1
	case l.Line > other.Line:
		return 1
	case l.Column < other.Column:
		return -1
	case l.Column > other.Column:
		return 1
	default:
		return 0
	}
}

// Less reports whether l sorts before other.
func (l FileLocation) Less(other FileLocation) bool {
	return l.Compare(other) < 0
}

// String formats the location as "line:column".
func (l FileLocation) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}
