package frontend

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/cctok/pkg/langdetect"
)

// Invocation is a compiler command line reduced to what a frontend needs.
type Invocation struct {
	// Argv is the full command line; Argv[0] is the compiler executable.
	Argv []string

	// WorkingDir is the absolute directory the command runs in.
	WorkingDir string

	// Source is the absolute path of the single source input.
	Source string

	// Language is the -x language, or the language guessed from the
	// source name when LanguageExplicit is false.
	Language langdetect.Language

	// LanguageExplicit is true when -x, -ObjC or -ObjC++ chose the language.
	LanguageExplicit bool

	// Standard is the value of the last -std= or --std option, or "".
	Standard string
}

// Executable returns Argv[0].
func (inv Invocation) Executable() string {
	return inv.Argv[0]
}

// separateValueFlags take their value in the following argument.
//
//nolint:gochecknoglobals // Read-only lookup table.
var separateValueFlags = map[string]bool{
	"-o": true, "-I": true, "-D": true, "-U": true, "-x": true,
	"-include": true, "-imacros": true, "-include-pch": true,
	"-isystem": true, "-iquote": true, "-idirafter": true, "-isysroot": true,
	"-iprefix": true, "-iwithprefix": true, "-iwithprefixbefore": true,
	"-ivfsoverlay": true, "-iframework": true,
	"-MF": true, "-MT": true, "-MQ": true, "-MJ": true,
	"-arch": true, "-target": true, "--target": true, "-aux-target": true,
	"--sysroot": true, "-gcc-toolchain": true, "--gcc-toolchain": true,
	"-resource-dir": true, "-working-directory": true,
	"-Xclang": true, "-Xpreprocessor": true, "-Xlinker": true, "-Xassembler": true,
	"-mllvm": true, "--param": true, "-F": true, "-L": true, "-framework": true,
	"-install_name": true, "-current_version": true, "-compatibility_version": true,
	"--std": true,
}

// ParseInvocation analyzes argv (executable first) to find the single
// source input and its language. Relative paths resolve against workDir,
// which must be absolute, or against -working-directory when present.
//
// Only operands with a C-family extension, or any operand under -x, are
// sources. Other operands are linker inputs, on either side of "--"; when
// no source remains the error names them.
func ParseInvocation(argv []string, workDir string) (Invocation, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Invocation{}, invocationErrorf(nil, "empty command line")
	}

	inv := Invocation{
		Argv:       slices.Clone(argv),
		WorkingDir: filepath.Clean(workDir),
	}

	var (
		xLang    string
		haveX    bool
		objcFlag langdetect.Language
		sources  []string
		srcLangs []string
		skipped  []string
	)

	onlyInputs := false
	for i := 1; i < len(argv); i++ {
		arg := argv[i]

		if onlyInputs || arg == "" || arg[0] != '-' {
			if haveX {
				if _, ok := langdetect.FromXFlag(xLang); !ok {
					return Invocation{}, invocationErrorf(nil, "unsupported language %q for input %s", xLang, arg)
				}
				sources = append(sources, arg)
				srcLangs = append(srcLangs, xLang)
				continue
			}
			if _, ok := langdetect.FromFilename(arg, nil); ok {
				sources = append(sources, arg)
				srcLangs = append(srcLangs, "")
			} else {
				skipped = append(skipped, arg)
			}
			continue
		}

		switch {
		case arg == "--":
			onlyInputs = true
		case arg == "-":
			return Invocation{}, invocationErrorf(nil, "reading source from stdin is not supported")
		case arg == "-ObjC":
			objcFlag = langdetect.ObjC
		case arg == "-ObjC++":
			objcFlag = langdetect.ObjCPP
		case separateValueFlags[arg]:
			if i+1 >= len(argv) {
				return Invocation{}, invocationErrorf(nil, "missing argument to %s", arg)
			}
			i++
			switch arg {
			case "-x":
				xLang, haveX = argv[i], argv[i] != "none"
			case "-working-directory":
				inv.WorkingDir = resolvePath(inv.WorkingDir, argv[i])
			case "--std":
				inv.Standard = argv[i]
			}
		case strings.HasPrefix(arg, "-x"):
			// Joined form, e.g. -xc++ or -xobjective-c.
			xLang = arg[2:]
			haveX = xLang != "none"
		case strings.HasPrefix(arg, "-std="), strings.HasPrefix(arg, "--std="):
			_, inv.Standard, _ = strings.Cut(arg, "=")
		case strings.HasPrefix(arg, "-working-directory="):
			inv.WorkingDir = resolvePath(inv.WorkingDir, strings.TrimPrefix(arg, "-working-directory="))
		}
	}

	switch len(sources) {
	case 0:
		if len(skipped) > 0 {
			return Invocation{}, invocationErrorf(nil, "unsupported source type %s", strings.Join(skipped, ", "))
		}
		return Invocation{}, invocationErrorf(nil, "no input files")
	case 1:
	default:
		return Invocation{}, invocationErrorf(nil, "multiple source files in one invocation: %s",
			strings.Join(sources, ", "))
	}

	inv.Source = resolvePath(inv.WorkingDir, sources[0])

	switch {
	case srcLangs[0] != "":
		inv.Language, _ = langdetect.FromXFlag(srcLangs[0])
		inv.LanguageExplicit = true
	case objcFlag != langdetect.Unknown:
		inv.Language = objcFlag
		inv.LanguageExplicit = true
	default:
		inv.Language, _ = langdetect.FromFilename(inv.Source, nil)
	}

	return inv, nil
}

// ResolveLanguage settles the language once the file content is known.
// An explicit -x always wins; otherwise ambiguous headers are classified
// by content, and a C++ driver (clang++, g++) upgrades a plain C header.
func (inv Invocation) ResolveLanguage(content []byte) langdetect.Language {
	if inv.LanguageExplicit {
		return inv.Language
	}

	lang, ok := langdetect.FromFilename(inv.Source, content)
	if !ok {
		return inv.Language
	}
	if lang == langdetect.C && strings.EqualFold(filepath.Ext(inv.Source), ".h") &&
		langdetect.FromDriver(inv.Executable()) == langdetect.CPP {
		return langdetect.CPP
	}
	return lang
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
