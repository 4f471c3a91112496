package tokenize

import (
	"strings"

	"github.com/yaklabco/cctok/pkg/frontend"
	"github.com/yaklabco/cctok/pkg/token"
)

// classifier turns one raw unit stream into classified tokens.
type classifier struct {
	raw   []frontend.RawToken
	lines *token.LineIndex
	vocab vocabulary
	out   []token.Token
}

func classify(unit *frontend.Unit) []token.Token {
	c := &classifier{
		raw:   unit.Tokens,
		lines: token.NewLineIndex(unit.Content),
		vocab: vocabularyFor(unit.Language, unit.Standard),
		out:   make([]token.Token, 0, len(unit.Tokens)),
	}

	for i := 0; i < len(c.raw); {
		switch {
		case c.opensDirective(i):
			i = c.directive(i)
		case c.isAtWord(i):
			c.emit(c.raw[i].Offset, c.raw[i+1].End(), c.atWordType(i+1))
			i += 2
		default:
			c.emit(c.raw[i].Offset, c.raw[i].End(), c.unitType(c.raw[i]))
			i++
		}
	}
	return c.out
}

func (c *classifier) emit(start, end int, typ token.TokenType) {
	from, to := c.lines.Span(start, end)
	c.out = append(c.out, token.Token{Start: from, End: to, Type: typ})
}

// unitType is the classification of a unit outside any directive.
func (c *classifier) unitType(u frontend.RawToken) token.TokenType {
	switch u.Kind {
	case frontend.RawComment:
		return token.Comment
	case frontend.RawIdentifier:
		switch {
		case c.vocab.isKeyword(u.Text):
			return token.Keyword
		case c.vocab.operators.has(u.Text):
			return token.Operator
		default:
			return token.Unknown
		}
	case frontend.RawPunctuator:
		return token.Operator
	case frontend.RawNumeric:
		return token.LiteralNumeric
	case frontend.RawString:
		return token.LiteralString
	case frontend.RawChar:
		return token.LiteralCharacter
	default:
		return token.Unknown
	}
}

// isAtWord reports whether units i and i+1 spell an Objective-C @keyword
// or @"string" with nothing between them.
func (c *classifier) isAtWord(i int) bool {
	if c.vocab.atWords == nil || i+1 >= len(c.raw) {
		return false
	}
	at, next := c.raw[i], c.raw[i+1]
	if at.Kind != frontend.RawPunctuator || at.Text != "@" || next.Offset != at.End() {
		return false
	}
	return next.Kind == frontend.RawString || next.Kind == frontend.RawIdentifier && c.vocab.atWords.has(next.Text)
}

func (c *classifier) atWordType(i int) token.TokenType {
	if c.raw[i].Kind == frontend.RawString {
		return token.LiteralString
	}
	return token.Keyword
}

// opensDirective reports whether unit i is a '#' that starts a directive:
// only comments confined to the same line may precede it on its logical line.
func (c *classifier) opensDirective(i int) bool {
	u := c.raw[i]
	if u.Kind != frontend.RawPunctuator || u.Text != "#" && u.Text != "%:" {
		return false
	}
	for j := i; j > 0; j-- {
		if c.raw[j].StartOfLine {
			return true
		}
		prev := c.raw[j-1]
		if prev.Kind != frontend.RawComment || strings.ContainsAny(prev.Text, "\r\n") {
			return false
		}
	}
	return true
}

// directive emits the directive opened at unit i and returns the index of
// the first unit after its logical line. The directive token runs from the
// hash to the last non-comment unit of the line; comments after that unit
// are emitted on their own.
func (c *classifier) directive(i int) int {
	end := i + 1
	for end < len(c.raw) && !c.raw[end].StartOfLine {
		end++
	}

	last := i
	for j := end - 1; j > i; j-- {
		if c.raw[j].Kind != frontend.RawComment {
			last = j
			break
		}
	}

	c.emit(c.raw[i].Offset, c.raw[last].End(), c.directiveType(i+1, last))
	for j := last + 1; j < end; j++ {
		c.emit(c.raw[j].Offset, c.raw[j].End(), token.Comment)
	}
	return end
}

// directiveType classifies a directive by its first non-comment unit in
// raw[from:to+1].
func (c *classifier) directiveType(from, to int) token.TokenType {
	for j := from; j <= to; j++ {
		u := c.raw[j]
		if u.Kind == frontend.RawComment {
			continue
		}
		if u.Kind != frontend.RawIdentifier {
			return token.PreprocessingDirective
		}
		switch {
		case frontend.IsInclusionKeyword(u.Text):
			return token.InclusionDirective
		case u.Text == "define":
			return token.MacroDefinition
		default:
			return token.PreprocessingDirective
		}
	}
	return token.PreprocessingDirective
}
