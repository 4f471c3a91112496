package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cctok/pkg/runner"
	"github.com/yaklabco/cctok/pkg/token"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "42 tokens in 3 files (2 from database, 1 fallback)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to tokenize.") + "\n"
	}

	var b strings.Builder

	headline := fmt.Sprintf("%d %s in %d %s",
		stats.TokensTotal, plural(stats.TokensTotal, "token", "tokens"),
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))
	if stats.FilesErrored > 0 {
		b.WriteString(headline)
		b.WriteString(", ")
		b.WriteString(s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	} else {
		b.WriteString(s.Success.Render(headline))
	}

	var sources []string
	if n := stats.FilesBySource[runner.SourceDatabase]; n > 0 {
		sources = append(sources, fmt.Sprintf("%d from database", n))
	}
	if n := stats.FilesBySource[runner.SourceFlags]; n > 0 {
		sources = append(sources, fmt.Sprintf("%d from flags", n))
	}
	if n := stats.FilesBySource[runner.SourceFallback]; n > 0 {
		sources = append(sources, fmt.Sprintf("%d fallback", n))
	}
	if len(sources) > 0 {
		b.WriteString(s.Dim.Render(" (" + strings.Join(sources, ", ") + ")"))
	}

	b.WriteString("\n")
	return b.String()
}

// FormatSummary formats run statistics as a block with a per-type breakdown.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(s.TableSeparator.Render(strings.Repeat("─", summaryDividerWidth)))
	b.WriteString("\n")

	row := func(label string, value int) {
		fmt.Fprintf(&b, "  %s %s\n", s.Label.Render(fmt.Sprintf("%-20s", label+":")), s.Bold.Render(fmt.Sprint(value)))
	}

	row("Files discovered", stats.FilesDiscovered)
	row("Files tokenized", stats.FilesProcessed)
	if stats.FilesErrored > 0 {
		fmt.Fprintf(&b, "  %s %s\n", s.Label.Render(fmt.Sprintf("%-20s", "Files failed:")),
			s.Failure.Render(fmt.Sprint(stats.FilesErrored)))
	}
	row("Tokens", stats.TokensTotal)

	for _, typ := range token.AllTypes() {
		count := stats.TokensByType[typ]
		if count == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s %d\n", s.ForType(typ).Render(fmt.Sprintf("%-22s", typ.String())), count)
	}

	return b.String()
}
