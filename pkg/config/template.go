package config

import (
	"bytes"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// BuildDir is written uncommented when set, e.g. the build directory
	// that cctok init found a compilation database in.
	BuildDir string

	// Frontend is written uncommented when set.
	Frontend FrontendKind
}

// GenerateTemplate creates a commented configuration file. Settings not in
// opts are present as comments showing their defaults.
func GenerateTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString("# cctok configuration\n\n")

	buf.WriteString("# Raw lexer: builtin (in process) or clang (runs clang -dump-raw-tokens).\n")
	if opts.Frontend != "" {
		fmt.Fprintf(&buf, "frontend: %s\n", opts.Frontend)
	} else {
		buf.WriteString("# frontend: builtin\n")
	}
	buf.WriteString("\n# Compiler executable used by the clang frontend.\n")
	buf.WriteString("# clang_path: clang\n")

	buf.WriteString("\n# Executable prepended to flags given after --.\n")
	buf.WriteString("# placeholder_executable: clang\n")

	buf.WriteString("\n# Directory holding compile_commands.json, relative to this file.\n")
	if opts.BuildDir != "" {
		fmt.Fprintf(&buf, "build_dir: %s\n", opts.BuildDir)
	} else {
		buf.WriteString("# build_dir: build\n")
	}

	buf.WriteString(`
# Files tokenized in parallel (0 = one per CPU).
# jobs: 0

# Output format: text, json, msgpack or html.
# format: text

# Colored text output: auto, always or never.
# color: auto

# Log level: debug, info, warn or error.
# log_level: info

# Glob patterns skipped when walking directories.
# ignore:
#   - "third_party/**"
`)

	return buf.Bytes()
}
