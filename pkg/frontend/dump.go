package frontend

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/cctok/pkg/token"
)

// ErrMalformedDump is returned when clang's raw token dump cannot be mapped
// back onto the source file.
var ErrMalformedDump = errors.New("malformed raw token dump")

//nolint:gochecknoglobals // Compiled once.
var (
	dumpLocPattern  = regexp.MustCompile(`\tLoc=<([^\n<>]*):(\d+):(\d+)>`)
	dumpKindPattern = regexp.MustCompile(`(?m)^([a-z_]+) '`)
)

type dumpEntry struct {
	kind   string
	offset int
}

// ParseRawDump maps the output of clang -Xclang -dump-raw-tokens onto
// content. Every dumped token is located by its Loc, and its extent runs to
// the next token's location: in raw mode clang dumps whitespace too, so the
// locations tile the file. Blank units are dropped and the rest lose their
// trailing blanks.
func ParseRawDump(dump, content []byte) ([]RawToken, error) {
	text := string(dump)
	lines := token.NewLineIndex(content)
	locs := dumpLocPattern.FindAllStringSubmatchIndex(text, -1)

	entries := make([]dumpEntry, 0, len(locs))
	prev := 0
	for _, loc := range locs {
		kind := ""
		if km := dumpKindPattern.FindStringSubmatch(text[prev:loc[0]]); km != nil {
			kind = km[1]
		}
		prev = loc[1]
		if kind == "eof" {
			continue
		}

		line, lineErr := strconv.Atoi(text[loc[4]:loc[5]])
		col, colErr := strconv.Atoi(text[loc[6]:loc[7]])
		if lineErr != nil || colErr != nil {
			return nil, fmt.Errorf("%w: bad location %q", ErrMalformedDump, text[loc[0]:loc[1]])
		}
		offset, ok := lines.Offset(token.FileLocation{Line: line, Column: col})
		if !ok {
			return nil, fmt.Errorf("%w: location %d:%d outside the file", ErrMalformedDump, line, col)
		}
		if n := len(entries); n > 0 && offset < entries[n-1].offset {
			return nil, fmt.Errorf("%w: location %d:%d out of order", ErrMalformedDump, line, col)
		}
		entries = append(entries, dumpEntry{kind: kind, offset: offset})
	}

	tokens := make([]RawToken, 0, len(entries))
	for i, entry := range entries {
		end := len(content)
		if i+1 < len(entries) {
			end = entries[i+1].offset
		}
		n := trimBlankSuffix(content, entry.offset, end)
		if n == 0 {
			continue
		}
		tokens = append(tokens, RawToken{
			Kind:   rawKindForClang(entry.kind),
			Offset: entry.offset,
			Len:    n,
			Text:   unsplice(content[entry.offset : entry.offset+n]),
		})
	}
	return tokens, nil
}

// rawKindForClang maps clang token kind names to raw kinds.
func rawKindForClang(kind string) RawKind {
	switch {
	case kind == "raw_identifier" || kind == "identifier":
		return RawIdentifier
	case kind == "numeric_constant":
		return RawNumeric
	case strings.HasSuffix(kind, "char_constant"):
		return RawChar
	case strings.HasSuffix(kind, "string_literal") || kind == "header_name":
		return RawString
	case kind == "comment":
		return RawComment
	case kind == "unknown" || kind == "":
		return RawUnknown
	default:
		return RawPunctuator
	}
}

// unsplice removes line splices from a unit's spelling.
func unsplice(b []byte) string {
	var out strings.Builder
	out.Grow(len(b))
	for i := 0; i < len(b); {
		if n := spliceLen(b, i); n > 0 {
			i += n
			continue
		}
		out.WriteByte(b[i])
		i++
	}
	return out.String()
}
