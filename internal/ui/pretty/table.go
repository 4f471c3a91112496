package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/cctok/pkg/token"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minRangeWidth    = 9
	typeColumnWidth  = 22
	minTextWidth     = 16
	defaultTermWidth = 100
	lightSeparator   = "─"
)

// TableFormatter formats tokens as aligned columns: RANGE, TYPE, TEXT.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth}
}

// FormatTokens renders one row per token. content may be nil, in which
// case the TEXT column is omitted.
func (t *TableFormatter) FormatTokens(content []byte, tokens []token.Token) string {
	ranges := make([]string, len(tokens))
	rangeWidth := minRangeWidth
	for i, tok := range tokens {
		ranges[i] = FormatRange(tok)
		rangeWidth = max(rangeWidth, len(ranges[i]))
	}

	textWidth := max(t.termWidth-rangeWidth-typeColumnWidth-2*tablePadding, minTextWidth)
	gap := strings.Repeat(" ", tablePadding)

	var b strings.Builder

	header := pad("RANGE", rangeWidth) + gap + pad("TYPE", typeColumnWidth)
	if content != nil {
		header += gap + "TEXT"
	}
	b.WriteString(t.styles.TableHeader.Render(strings.TrimRight(header, " ")))
	b.WriteString("\n")
	b.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, lipgloss.Width(header))))
	b.WriteString("\n")

	var index *token.LineIndex
	if content != nil {
		index = token.NewLineIndex(content)
	}

	for i, tok := range tokens {
		b.WriteString(t.styles.Location.Render(pad(ranges[i], rangeWidth)))
		b.WriteString(gap)
		typeCell := t.styles.ForType(tok.Type).Render(pad(tok.Type.String(), typeColumnWidth))
		if index == nil {
			b.WriteString(strings.TrimRight(typeCell, " "))
		} else {
			b.WriteString(typeCell)
			b.WriteString(gap)
			b.WriteString(Snippet(index, content, tok, textWidth))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatRange formats a token's span as "line:col-line:col".
func FormatRange(tok token.Token) string {
	return fmt.Sprintf("%s-%s", tok.Start, tok.End)
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
