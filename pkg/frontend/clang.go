package frontend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cctok/pkg/fsutil"
)

// DefaultClangPath is the compiler Clang runs when Path is empty.
const DefaultClangPath = "clang"

// Clang raw-lexes by running the clang driver with -dump-raw-tokens.
// The invocation's flags are passed through, so an unsupported flag or a
// missing sysroot is reported the way the compiler reports it.
type Clang struct {
	// Path is the clang executable. Empty means DefaultClangPath.
	Path string

	// Logger receives the command line at debug level. May be nil.
	Logger *log.Logger
}

// Lex implements Frontend.
func (c Clang) Lex(ctx context.Context, inv Invocation) (*Unit, error) {
	content, info, err := fsutil.ReadFile(ctx, inv.Source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, invocationErrorf(err, "cannot read source")
	}
	lang := inv.ResolveLanguage(content)

	path := c.Path
	if path == "" {
		path = DefaultClangPath
	}
	args := clangArgs(inv)
	if c.Logger != nil {
		c.Logger.Debug("running clang", "path", path, "args", strings.Join(args, " "), "dir", inv.WorkingDir)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = inv.WorkingDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return nil, &InvocationError{
				Reason:      fmt.Sprintf("%s exited with status %d", path, exitErr.ExitCode()),
				Diagnostics: diagnostics(stderr.Bytes()),
			}
		}
		return nil, invocationErrorf(runErr, "cannot run %s", path)
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, invocationErrorf(err, "cannot recheck source")
	}
	if modified {
		return nil, invocationErrorf(nil, "source changed during tokenization: %s", inv.Source)
	}

	tokens, err := ParseRawDump(stderr.Bytes(), content)
	if err != nil {
		return nil, invocationErrorf(err, "cannot parse clang output")
	}
	markLineStarts(content, tokens)

	return &Unit{
		Path:     info.Path,
		Language: lang,
		Standard: inv.Standard,
		Content:  content,
		Tokens:   tokens,
	}, nil
}

// droppedFlags produce output files or change what the driver does, and
// would fight with -fsyntax-only. The bool reports whether the flag takes
// a separate value.
//
//nolint:gochecknoglobals // Read-only lookup table.
var droppedFlags = map[string]bool{
	"-o": true, "-MF": true, "-MT": true, "-MQ": true, "-MJ": true,
	"-c": false, "-S": false, "-E": false, "-M": false, "-MM": false,
	"-MD": false, "-MMD": false, "-MP": false, "-MG": false, "-fsyntax-only": false,
}

// clangArgs rewrites the invocation's arguments (without the executable)
// so that clang only dumps raw tokens.
func clangArgs(inv Invocation) []string {
	src := inv.Argv[1:]
	args := make([]string, 0, len(src)+4)
	injected := []string{"-fsyntax-only", "-fno-color-diagnostics", "-Xclang", "-dump-raw-tokens"}

	for i := 0; i < len(src); i++ {
		arg := src[i]
		if arg == "--" {
			args = append(args, injected...)
			injected = nil
			args = append(args, src[i:]...)
			break
		}
		if separate, ok := droppedFlags[arg]; ok {
			if separate {
				i++
			}
			continue
		}
		if isJoinedOutputFlag(arg) {
			continue
		}
		args = append(args, arg)
		// Values of pass-through flags are copied verbatim.
		if separateValueFlags[arg] && i+1 < len(src) {
			i++
			args = append(args, src[i])
		}
	}
	return append(args, injected...)
}

// isJoinedOutputFlag matches -ofile and -MFfile style arguments. Flags
// such as -objcmt-migrate-literals share the -o prefix and are kept.
func isJoinedOutputFlag(arg string) bool {
	if len(arg) > 2 && strings.HasPrefix(arg, "-o") {
		return !strings.HasPrefix(arg, "-ob")
	}
	for _, prefix := range []string{"-MF", "-MT", "-MQ", "-MJ"} {
		if len(arg) > len(prefix) && strings.HasPrefix(arg, prefix) {
			return true
		}
	}
	return false
}

// diagnostics extracts the error lines clang printed, or every non-empty
// line when none is marked as an error.
func diagnostics(stderr []byte) []string {
	var errs, all []string
	for line := range strings.Lines(string(stderr)) {
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		all = append(all, line)
		if strings.Contains(line, "error:") {
			errs = append(errs, line)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return all
}
