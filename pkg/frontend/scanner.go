package frontend

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/cctok/pkg/langdetect"
)

// checkInterval is how many units the scanner lexes between context checks.
const checkInterval = 1024

// maxRawDelimiter is the longest delimiter a C++ raw string may declare.
const maxRawDelimiter = 16

//nolint:gochecknoglobals // Read-only.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Scan raw-lexes content as lang. Units never begin or end with whitespace
// or a line splice, and StartOfLine is set on the first unit of each
// logical line.
func Scan(ctx context.Context, content []byte, lang langdetect.Language) ([]RawToken, error) {
	s := &scanner{src: content, lang: lang}
	if bytes.HasPrefix(content, utf8BOM) {
		s.cur = len(utf8BOM)
	}

	var tokens []RawToken
	lineStart := true
	state := dirNone

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	for {
		c, at := s.char(s.cur)
		switch {
		case c < 0:
			markLineStarts(content, tokens)
			return tokens, nil
		case isNewline(byte(c)):
			lineStart = true
			s.cur = at + 1
			continue
		case isHorizontalSpace(byte(c)):
			s.cur = at + 1
			continue
		}

		s.begin(at)
		var kind RawKind
		if state == dirInclude && c == '<' && s.headerNameEnd() > 0 {
			kind = s.scanHeaderName()
		} else {
			kind = s.scanUnit()
		}
		tok := s.token(kind)
		tokens = append(tokens, tok)
		if len(tokens)%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("scan: %w", err)
			}
		}

		if kind == RawComment && !strings.ContainsAny(tok.Text, "\r\n") {
			continue
		}
		state = state.next(lineStart, tok)
		lineStart = false
	}
}

// dirState tracks how far the scanner is into an inclusion directive, so
// that <header> names are lexed as one unit.
type dirState uint8

const (
	dirNone dirState = iota
	dirHash
	dirInclude
)

func (d dirState) next(lineStart bool, tok RawToken) dirState {
	switch {
	case tok.Kind == RawComment:
		return d
	case lineStart && tok.Kind == RawPunctuator && (tok.Text == "#" || tok.Text == "%:"):
		return dirHash
	case d == dirHash && tok.Kind == RawIdentifier && IsInclusionKeyword(tok.Text):
		return dirInclude
	default:
		return dirNone
	}
}

// IsInclusionKeyword reports whether name introduces an inclusion directive.
func IsInclusionKeyword(name string) bool {
	switch name {
	case "include", "include_next", "import":
		return true
	default:
		return false
	}
}

type scanner struct {
	src  []byte
	lang langdetect.Language

	// cur is the offset of the next byte to examine.
	cur int

	// start and last are the offsets of the first and the last byte of the
	// unit being scanned.
	start int
	last  int

	// text accumulates the unit's spelling without line splices.
	text []byte
}

// char returns the character at or after offset i once line splices are
// skipped, along with its offset. It returns -1 at the end of input.
func (s *scanner) char(i int) (int, int) {
	for {
		n := spliceLen(s.src, i)
		if n == 0 {
			break
		}
		i += n
	}
	if i >= len(s.src) {
		return -1, i
	}
	return int(s.src[i]), i
}

func (s *scanner) begin(at int) {
	s.cur = at
	s.start = at
	s.last = at
	s.text = s.text[:0]
}

// token finishes the current unit. Literals cut off at the end of a line
// and comments running to the end of input lose their trailing blanks.
func (s *scanner) token(kind RawKind) RawToken {
	return RawToken{
		Kind:   kind,
		Offset: s.start,
		Len:    trimBlankSuffix(s.src, s.start, s.last+1),
		Text:   string(bytes.TrimRight(s.text, " \t\v\f\r\n")),
	}
}

func (s *scanner) peek() int {
	c, _ := s.char(s.cur)
	return c
}

// peekN returns the character k positions ahead of the next one.
func (s *scanner) peekN(k int) int {
	i := s.cur
	for ; k > 0; k-- {
		c, at := s.char(i)
		if c < 0 {
			return -1
		}
		i = at + 1
	}
	c, _ := s.char(i)
	return c
}

// lookahead returns the next n characters, or "" if fewer remain.
func (s *scanner) lookahead(n int) string {
	buf := make([]byte, 0, n)
	i := s.cur
	for range n {
		c, at := s.char(i)
		if c < 0 {
			return ""
		}
		buf = append(buf, byte(c))
		i = at + 1
	}
	return string(buf)
}

func (s *scanner) next() int {
	c, at := s.char(s.cur)
	if c < 0 {
		return -1
	}
	s.text = append(s.text, byte(c))
	s.last = at
	s.cur = at + 1
	return c
}

func (s *scanner) scanUnit() RawKind {
	c := s.peek()
	switch {
	case isIdentStart(c):
		return s.scanIdentifier()
	case isDigit(c) || c == '.' && isDigit(s.peekN(1)):
		return s.scanNumber()
	case c == '"':
		s.next()
		return s.scanQuoted('"', RawString)
	case c == '\'':
		s.next()
		return s.scanQuoted('\'', RawChar)
	case c == '/' && s.peekN(1) == '/':
		return s.scanLineComment()
	case c == '/' && s.peekN(1) == '*':
		return s.scanBlockComment()
	default:
		return s.scanPunctuator()
	}
}

func (s *scanner) scanIdentifier() RawKind {
	for isIdentChar(s.peek()) {
		s.next()
	}

	prefix := string(s.text)
	switch s.peek() {
	case '"':
		if isEncodingPrefix(prefix) {
			s.next()
			return s.scanQuoted('"', RawString)
		}
		if s.lang.IsCPlusPlus() && isRawStringPrefix(prefix) {
			return s.scanRawString()
		}
	case '\'':
		if isEncodingPrefix(prefix) {
			s.next()
			return s.scanQuoted('\'', RawChar)
		}
	}
	return RawIdentifier
}

// scanNumber lexes a preprocessing number, which is looser than any
// numeric literal grammar: 0x1p-3, 1e+5, 08 and 1.2.3 are all one unit.
func (s *scanner) scanNumber() RawKind {
	for {
		c := s.peek()
		switch {
		case isIdentChar(c) || c == '.':
			s.next()
			if (c == 'e' || c == 'E' || c == 'p' || c == 'P') && (s.peek() == '+' || s.peek() == '-') {
				s.next()
			}
		case c == '\'' && s.lang.IsCPlusPlus() && isIdentChar(s.peekN(1)):
			s.next()
		default:
			return RawNumeric
		}
	}
}

// scanQuoted lexes the rest of a string or character literal after its
// opening quote. A literal cut off by the end of the line is RawUnknown.
func (s *scanner) scanQuoted(quote int, kind RawKind) RawKind {
	for {
		c := s.peek()
		switch {
		case c < 0 || isNewline(byte(c)):
			return RawUnknown
		case c == quote:
			s.next()
			return kind
		case c == '\\':
			s.next()
			if e := s.peek(); e >= 0 && !isNewline(byte(e)) {
				s.next()
			}
		default:
			s.next()
		}
	}
}

// scanRawString lexes R"delim(...)delim" on the bytes as written, since
// line splices are not processed inside raw strings. The prefix has
// already been consumed.
func (s *scanner) scanRawString() RawKind {
	_, quote := s.char(s.cur)
	open := quote + 1
	d := open
	for d < len(s.src) && d-open <= maxRawDelimiter && isRawDelimiterChar(s.src[d]) {
		d++
	}

	end := len(s.src)
	kind := RawUnknown
	if d < len(s.src) && s.src[d] == '(' && d-open <= maxRawDelimiter {
		closing := make([]byte, 0, d-open+2)
		closing = append(closing, ')')
		closing = append(closing, s.src[open:d]...)
		closing = append(closing, '"')
		if idx := bytes.Index(s.src[d+1:], closing); idx >= 0 {
			end = d + 1 + idx + len(closing)
			kind = RawString
		}
	} else if idx := bytes.IndexByte(s.src[open:], '"'); idx >= 0 {
		end = open + idx + 1
	}

	s.text = append(s.text, s.src[quote:end]...)
	s.last = end - 1
	s.cur = end
	return kind
}

func (s *scanner) scanLineComment() RawKind {
	s.next()
	s.next()
	for c := s.peek(); c >= 0 && !isNewline(byte(c)); c = s.peek() {
		s.next()
	}
	return RawComment
}

// scanBlockComment lexes a /* */ comment. An unterminated comment runs to
// the end of input.
func (s *scanner) scanBlockComment() RawKind {
	s.next()
	s.next()
	for {
		c := s.next()
		if c < 0 {
			return RawComment
		}
		if c == '*' && s.peek() == '/' {
			s.next()
			return RawComment
		}
	}
}

// headerNameEnd returns the offset of the '>' closing a header name that
// starts at the current position, or 0 if the line has none.
func (s *scanner) headerNameEnd() int {
	for i := s.cur + 1; ; i++ {
		c, at := s.char(i)
		switch {
		case c < 0 || isNewline(byte(c)):
			return 0
		case c == '>':
			return at
		}
		i = at
	}
}

func (s *scanner) scanHeaderName() RawKind {
	end := s.headerNameEnd()
	for s.cur <= end {
		s.next()
	}
	return RawString
}

func (s *scanner) scanPunctuator() RawKind {
	// In C++, <:: is < followed by :: unless the next character is : or >.
	if s.lang.IsCPlusPlus() && s.lookahead(3) == "<::" {
		if c := s.peekN(3); c != ':' && c != '>' {
			s.next()
			return RawPunctuator
		}
	}

	for n := 4; n >= 2; n-- {
		if p := s.lookahead(n); p != "" && s.isPunctuator(p) {
			for range n {
				s.next()
			}
			return RawPunctuator
		}
	}

	c := s.next()
	if isSinglePunctuator(c) || c == '@' && s.lang.IsObjC() {
		return RawPunctuator
	}
	return RawUnknown
}

func (s *scanner) isPunctuator(p string) bool {
	switch p {
	case "%:%:",
		"...", "<<=", ">>=",
		"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
		"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##",
		"<:", ":>", "<%", "%>", "%:":
		return true
	case "->*", "<=>", "::", ".*":
		return s.lang.IsCPlusPlus()
	default:
		return false
	}
}

func isSinglePunctuator(c int) bool {
	switch c {
	case '[', ']', '(', ')', '{', '}', '.', '&', '*', '+', '-', '~', '!',
		'/', '%', '<', '>', '^', '|', '?', ':', ';', '=', ',', '#':
		return true
	default:
		return false
	}
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c int) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$' || c >= 0x80
}

func isIdentChar(c int) bool {
	return isIdentStart(c) || isDigit(c)
}

func isEncodingPrefix(p string) bool {
	switch p {
	case "L", "u", "U", "u8":
		return true
	default:
		return false
	}
}

func isRawStringPrefix(p string) bool {
	switch p {
	case "R", "LR", "uR", "UR", "u8R":
		return true
	default:
		return false
	}
}

func isRawDelimiterChar(c byte) bool {
	switch c {
	case ' ', '(', ')', '\\', '\t', '\v', '\f', '\n', '\r', '"':
		return false
	default:
		return c > ' ' && c < 0x7f
	}
}
