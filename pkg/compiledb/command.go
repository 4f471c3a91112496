package compiledb

import (
	"path/filepath"
	"slices"
)

// CompileCommand is one build invocation for one source file.
// It is a value type with no reference back to its Database.
type CompileCommand struct {
	// Argv is the full command line; Argv[0] is the compiler executable.
	Argv []string `json:"argv" msgpack:"argv"`

	// WorkingDirectory is the absolute directory the command runs in.
	WorkingDirectory string `json:"workingDirectory" msgpack:"workingDirectory"`

	// SourceFile is the absolute, cleaned path of the compiled file.
	// It is not case-folded; use Database keys for comparisons.
	SourceFile string `json:"sourceFile" msgpack:"sourceFile"`

	// Output is the record's optional "output" field.
	Output string `json:"output,omitempty" msgpack:"output,omitempty"`
}

// Executable returns Argv[0].
func (c CompileCommand) Executable() string {
	if len(c.Argv) == 0 {
		return ""
	}
	return c.Argv[0]
}

// Flags returns a copy of the arguments after the executable.
func (c CompileCommand) Flags() []string {
	if len(c.Argv) < 2 {
		return nil
	}
	return slices.Clone(c.Argv[1:])
}

// Clone returns a copy that shares no memory with c.
func (c CompileCommand) Clone() CompileCommand {
	c.Argv = slices.Clone(c.Argv)
	return c
}

// Equal reports whether two commands describe the same invocation.
func (c CompileCommand) Equal(other CompileCommand) bool {
	return slices.Equal(c.Argv, other.Argv) &&
		c.WorkingDirectory == other.WorkingDirectory &&
		c.SourceFile == other.SourceFile &&
		c.Output == other.Output
}

// resolve joins a record path onto base unless it is already absolute.
func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
