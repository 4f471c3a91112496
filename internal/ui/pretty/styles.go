// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/cctok/pkg/token"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Token styles, one per token type.
	Comment   lipgloss.Style
	Keyword   lipgloss.Style
	Operator  lipgloss.Style
	String    lipgloss.Style
	Character lipgloss.Style
	Numeric   lipgloss.Style
	Directive lipgloss.Style
	Inclusion lipgloss.Style
	Macro     lipgloss.Style
	Unknown   lipgloss.Style

	// File and command components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Argument lipgloss.Style
	Label    lipgloss.Style

	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Summary and table styles
	SummaryTitle   lipgloss.Style
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	colorEnabled bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors. The token palette
// follows common editor themes: comments dim, keywords magenta, literals
// red/blue, directives orange.
func newColorStyles() *Styles {
	return &Styles{
		Comment:   lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
		Keyword:   lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true),
		Operator:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		String:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
		Character: lipgloss.NewStyle().Foreground(lipgloss.Color("68")),
		Numeric:   lipgloss.NewStyle().Foreground(lipgloss.Color("68")),
		Directive: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
		Inclusion: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
		Macro:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Unknown:   lipgloss.NewStyle(),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Argument: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		SummaryTitle:   lipgloss.NewStyle().Bold(true),
		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		colorEnabled: true,
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Comment:        plain,
		Keyword:        plain,
		Operator:       plain,
		String:         plain,
		Character:      plain,
		Numeric:        plain,
		Directive:      plain,
		Inclusion:      plain,
		Macro:          plain,
		Unknown:        plain,
		FilePath:       plain,
		Location:       plain,
		Argument:       plain,
		Label:          plain,
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Failure:        plain,
		SummaryTitle:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ColorEnabled reports whether the styles emit color.
func (s *Styles) ColorEnabled() bool {
	return s.colorEnabled
}

// ForType returns the style for a token type.
func (s *Styles) ForType(t token.TokenType) lipgloss.Style {
	switch t {
	case token.Comment:
		return s.Comment
	case token.Keyword:
		return s.Keyword
	case token.Operator:
		return s.Operator
	case token.LiteralString:
		return s.String
	case token.LiteralCharacter:
		return s.Character
	case token.LiteralNumeric:
		return s.Numeric
	case token.PreprocessingDirective:
		return s.Directive
	case token.InclusionDirective:
		return s.Inclusion
	case token.MacroDefinition:
		return s.Macro
	default:
		return s.Unknown
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
