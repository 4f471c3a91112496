package compiledb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/shlex"
)

// Record field names.
const (
	fieldDirectory = "directory"
	fieldFile      = "file"
	fieldCommand   = "command"
	fieldArguments = "arguments"
	fieldOutput    = "output"
)

// record is one decoded compile_commands.json entry, before path resolution.
type record struct {
	directory string
	file      string
	argv      []string
	output    string
}

// decodeRecords parses the database JSON into records.
// The top level must be an array of objects; unknown keys are ignored.
func decodeRecords(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("top level is not a JSON array")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	records := make([]record, 0, len(raw))
	for idx, msg := range raw {
		rec, err := decodeRecord(idx, msg)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(idx int, msg json.RawMessage) (record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil || fields == nil {
		return record{}, &RecordError{Index: idx, Reason: "not a JSON object"}
	}

	var rec record
	var err error

	if rec.directory, err = requireString(idx, fields, fieldDirectory); err != nil {
		return record{}, err
	}
	if rec.file, err = requireString(idx, fields, fieldFile); err != nil {
		return record{}, err
	}

	command, hasCommand := fields[fieldCommand]
	arguments, hasArguments := fields[fieldArguments]

	switch {
	case hasCommand && hasArguments:
		return record{}, &RecordError{Index: idx, Reason: `both "command" and "arguments" present`}
	case hasCommand:
		rec.argv, err = splitCommand(idx, command)
	case hasArguments:
		rec.argv, err = decodeArguments(idx, arguments)
	default:
		return record{}, &RecordError{Index: idx, Reason: `neither "command" nor "arguments" present`}
	}
	if err != nil {
		return record{}, err
	}

	if len(rec.argv) == 0 {
		return record{}, &RecordError{Index: idx, Reason: "empty command line"}
	}

	if outputMsg, ok := fields[fieldOutput]; ok {
		if err := json.Unmarshal(outputMsg, &rec.output); err != nil {
			return record{}, &RecordError{Index: idx, Field: fieldOutput, Reason: "not a string"}
		}
	}

	return rec, nil
}

func requireString(idx int, fields map[string]json.RawMessage, name string) (string, error) {
	msg, ok := fields[name]
	if !ok {
		return "", &RecordError{Index: idx, Field: name, Reason: "missing"}
	}

	var value string
	if err := json.Unmarshal(msg, &value); err != nil || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
		return "", &RecordError{Index: idx, Field: name, Reason: "not a string"}
	}
	if value == "" {
		return "", &RecordError{Index: idx, Field: name, Reason: "empty"}
	}
	return value, nil
}

// splitCommand tokenizes the shell-escaped "command" form into argv.
func splitCommand(idx int, msg json.RawMessage) ([]string, error) {
	var command string
	if err := json.Unmarshal(msg, &command); err != nil {
		return nil, &RecordError{Index: idx, Field: fieldCommand, Reason: "not a string"}
	}

	argv, err := SplitCommand(command)
	if err != nil {
		return nil, &RecordError{Index: idx, Field: fieldCommand, Reason: err.Error()}
	}
	return argv, nil
}

// decodeArguments reads the unescaped "arguments" form.
func decodeArguments(idx int, msg json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil || items == nil {
		return nil, &RecordError{Index: idx, Field: fieldArguments, Reason: "not an array of strings"}
	}

	argv := make([]string, 0, len(items))
	for _, item := range items {
		var arg string
		if err := json.Unmarshal(item, &arg); err != nil || bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			return nil, &RecordError{Index: idx, Field: fieldArguments, Reason: "not an array of strings"}
		}
		argv = append(argv, arg)
	}
	return argv, nil
}

// SplitCommand splits a shell-escaped command line into argv using POSIX
// quoting rules: whitespace separates words, single quotes are literal,
// double quotes allow backslash escapes, and a bare backslash escapes the
// next character.
func SplitCommand(command string) ([]string, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("split command: %w", err)
	}
	return argv, nil
}
