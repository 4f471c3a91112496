package reporter

import (
	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/runner"
	"github.com/yaklabco/cctok/pkg/token"
)

// OutputVersion is the schema version of structured output.
const OutputVersion = "1.0.0"

// Output is the top-level structure written by the JSON and MessagePack
// reporters.
type Output struct {
	Version string       `json:"version" msgpack:"version"`
	Files   []FileResult `json:"files" msgpack:"files"`
	Summary Summary      `json:"summary" msgpack:"summary"`
}

// FileResult represents a single file's tokens.
type FileResult struct {
	Path    string                    `json:"path" msgpack:"path"`
	Source  string                    `json:"source,omitempty" msgpack:"source,omitempty"`
	Command *compiledb.CompileCommand `json:"command,omitempty" msgpack:"command,omitempty"`
	Tokens  []TokenResult             `json:"tokens" msgpack:"tokens"`
	Error   string                    `json:"error,omitempty" msgpack:"error,omitempty"`
}

// TokenResult represents a single token. SemanticType is the LSP semantic
// token type and is omitted for unknown tokens.
type TokenResult struct {
	Start        token.FileLocation `json:"startLocation" msgpack:"startLocation"`
	End          token.FileLocation `json:"endLocation" msgpack:"endLocation"`
	Type         string             `json:"type" msgpack:"type"`
	SemanticType string             `json:"semanticType,omitempty" msgpack:"semanticType,omitempty"`
}

// Summary contains aggregate statistics.
type Summary struct {
	FilesDiscovered int            `json:"filesDiscovered" msgpack:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed" msgpack:"filesProcessed"`
	FilesErrored    int            `json:"filesErrored" msgpack:"filesErrored"`
	Tokens          int            `json:"tokens" msgpack:"tokens"`
	BySource        map[string]int `json:"bySource" msgpack:"bySource"`
	ByType          map[string]int `json:"byType" msgpack:"byType"`
}

// LookupOutput is the structure written for a compile command lookup.
type LookupOutput struct {
	Version  string                     `json:"version" msgpack:"version"`
	File     string                     `json:"file" msgpack:"file"`
	Commands []compiledb.CompileCommand `json:"commands" msgpack:"commands"`
}

func buildOutput(result *runner.Result, workDir string) *Output {
	output := &Output{
		Version: OutputVersion,
		Files:   make([]FileResult, 0),
		Summary: Summary{
			BySource: make(map[string]int),
			ByType:   make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary.FilesDiscovered = stats.FilesDiscovered
	output.Summary.FilesProcessed = stats.FilesProcessed
	output.Summary.FilesErrored = stats.FilesErrored
	output.Summary.Tokens = stats.TokensTotal
	for source, n := range stats.FilesBySource {
		output.Summary.BySource[string(source)] = n
	}
	for typ, n := range stats.TokensByType {
		output.Summary.ByType[typ.String()] = n
	}

	if len(result.Files) > 0 {
		output.Files = make([]FileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := FileResult{
			Path:   displayPath(workDir, file.Path),
			Source: string(file.Source),
			Tokens: make([]TokenResult, 0, len(file.Tokens)),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		if len(file.Command.Argv) > 0 {
			cmd := file.Command.Clone()
			fileResult.Command = &cmd
		}

		for _, tok := range file.Tokens {
			fileResult.Tokens = append(fileResult.Tokens, TokenResult{
				Start:        tok.Start,
				End:          tok.End,
				Type:         tok.Type.String(),
				SemanticType: tok.Type.SemanticType(),
			})
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func buildLookupOutput(path string, cmds []compiledb.CompileCommand) *LookupOutput {
	output := &LookupOutput{
		Version:  OutputVersion,
		File:     path,
		Commands: make([]compiledb.CompileCommand, 0, len(cmds)),
	}
	for _, cmd := range cmds {
		output.Commands = append(output.Commands, cmd.Clone())
	}
	return output
}
