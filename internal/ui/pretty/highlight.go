package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/cctok/pkg/token"
)

// Highlight renders content with each token in its type's style. Text
// between tokens is copied unchanged. Tokens that do not fit content are
// skipped, so a file edited after tokenizing still prints.
func (s *Styles) Highlight(content []byte, tokens []token.Token) string {
	if !s.colorEnabled {
		return string(content)
	}

	index := token.NewLineIndex(content)

	var b strings.Builder
	b.Grow(len(content) * 2)

	pos := 0
	for _, tok := range tokens {
		start, end, ok := index.Extent(tok)
		if !ok || start < pos {
			continue
		}
		b.Write(content[pos:start])
		b.WriteString(renderLines(s.ForType(tok.Type), string(content[start:end])))
		pos = end
	}
	b.Write(content[pos:])

	return b.String()
}

// renderLines styles each line separately so that lipgloss does not pad
// multi-line tokens into a block.
func renderLines(style lipgloss.Style, text string) string {
	style = style.TabWidth(lipgloss.NoTabConversion)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Snippet returns the first line of a token's text, cut to width runes.
// It returns "" when the token does not fit content.
func Snippet(index *token.LineIndex, content []byte, tok token.Token, width int) string {
	start, end, ok := index.Extent(tok)
	if !ok {
		return ""
	}
	text := string(content[start:end])
	more := false
	if line, _, found := strings.Cut(text, "\n"); found {
		text = strings.TrimRight(line, "\r\\")
		more = true
	}
	runes := []rune(text)
	if width > 0 && len(runes) > width {
		runes = runes[:width-1]
		more = true
	}
	if more {
		return string(runes) + "…"
	}
	return string(runes)
}
