// Package config defines the cctok configuration types.
// These are plain data; discovery and merging live in the CLI.
package config

// FrontendKind selects the raw lexer.
type FrontendKind string

const (
	// FrontendBuiltin lexes in process.
	FrontendBuiltin FrontendKind = "builtin"

	// FrontendClang runs clang -dump-raw-tokens.
	FrontendClang FrontendKind = "clang"
)

// IsValid reports whether k names a known frontend.
func (k FrontendKind) IsValid() bool {
	return k == FrontendBuiltin || k == FrontendClang
}

// OutputFormat specifies how tokens and commands are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatMsgpack OutputFormat = "msgpack"
	FormatHTML    OutputFormat = "html"
)

// IsValid reports whether f names a known format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatMsgpack, FormatHTML:
		return true
	default:
		return false
	}
}

// ColorMode controls colored text output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m names a known color mode.
func (m ColorMode) IsValid() bool {
	return m == ColorAuto || m == ColorAlways || m == ColorNever
}

// Config is the root configuration structure.
type Config struct {
	// Frontend selects the raw lexer: "builtin" or "clang".
	Frontend FrontendKind `yaml:"frontend,omitempty"`

	// ClangPath is the clang executable for the clang frontend.
	ClangPath string `yaml:"clang_path,omitempty"`

	// PlaceholderExecutable is prepended to flag-only command lines.
	PlaceholderExecutable string `yaml:"placeholder_executable,omitempty"`

	// BuildDir is searched for compile_commands.json before the source's
	// own directory and its ancestors.
	BuildDir string `yaml:"build_dir,omitempty"`

	// Jobs is the number of files tokenized in parallel; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs,omitempty"`

	// Format is the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color controls colored text output.
	Color ColorMode `yaml:"color,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	// Ignore holds glob patterns skipped when walking directories.
	Ignore []string `yaml:"ignore,omitempty"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Frontend:              FrontendBuiltin,
		ClangPath:             "clang",
		PlaceholderExecutable: "clang",
		Jobs:                  0,
		Format:                FormatText,
		Color:                 ColorAuto,
		LogLevel:              "info",
	}
}
