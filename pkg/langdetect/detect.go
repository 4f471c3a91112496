// Package langdetect identifies which C-family language a source file is
// written in. It uses go-enry for extension lookup and, for ambiguous
// headers, a few strong textual markers before falling back to the
// go-enry classifier.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a C-family source language.
type Language string

// Supported languages. The values match the clang driver's -x names.
const (
	Unknown Language = ""
	C       Language = "c"
	CPP     Language = "c++"
	ObjC    Language = "objective-c"
	ObjCPP  Language = "objective-c++"
)

const langText = "text"

// enryNames maps go-enry language names to Language values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]Language{
	"C":             C,
	"C++":           CPP,
	"Objective-C":   ObjC,
	"Objective-C++": ObjCPP,
}

// candidates is the classifier candidate list, in tie-break preference order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{"C", "C++", "Objective-C", "Objective-C++"}

// IsCPlusPlus returns true for C++ and Objective-C++.
func (l Language) IsCPlusPlus() bool {
	return l == CPP || l == ObjCPP
}

// IsObjC returns true for Objective-C and Objective-C++.
func (l Language) IsObjC() bool {
	return l == ObjC || l == ObjCPP
}

// String returns the -x name, or "text" for Unknown.
func (l Language) String() string {
	if l == Unknown {
		return langText
	}
	return string(l)
}

// FromXFlag parses the argument of clang's -x option.
// Header and preprocessed variants map to their base language.
// Returns false for languages outside the C family.
func FromXFlag(value string) (Language, bool) {
	switch value {
	case "c", "c-header", "cpp-output":
		return C, true
	case "c++", "c++-header", "c++-cpp-output", "c++-module", "c++-system-header", "c++-user-header":
		return CPP, true
	case "objective-c", "objective-c-header", "objc-cpp-output", "objective-c-cpp-output":
		return ObjC, true
	case "objective-c++", "objective-c++-header", "objc++-cpp-output", "objective-c++-cpp-output":
		return ObjCPP, true
	default:
		return Unknown, false
	}
}

// FromFilename detects the language of a source file.
// content may be nil; it is only consulted when the extension is ambiguous.
// Returns false if the file is not recognized as a C-family source.
func FromFilename(filename string, content []byte) (Language, bool) {
	// Strategy 1: unambiguous extension.
	matches := familyMatches(enry.GetLanguagesByExtension(filename, nil, nil))
	switch len(matches) {
	case 0:
		return Unknown, false
	case 1:
		return matches[0], true
	}

	// Strategy 2: markers that only one language can contain.
	if lang := detectByPattern(content); lang != Unknown && contains(matches, lang) {
		return lang, true
	}

	// Strategy 3: classifier, only when it is confident.
	if len(bytes.TrimSpace(content)) > 0 {
		names := make([]string, 0, len(matches))
		for _, name := range candidates {
			if contains(matches, enryNames[name]) {
				names = append(names, name)
			}
		}
		if name, safe := enry.GetLanguageByClassifier(content, names); safe {
			if lang, ok := enryNames[name]; ok {
				return lang, true
			}
		}
	}

	return matches[0], true
}

// familyMatches filters go-enry results down to C-family languages,
// ordered by candidate preference.
func familyMatches(names []string) []Language {
	found := make(map[Language]bool, len(names))
	for _, name := range names {
		if lang, ok := enryNames[name]; ok {
			found[lang] = true
		}
	}

	var out []Language
	for _, name := range candidates {
		if lang := enryNames[name]; found[lang] {
			out = append(out, lang)
		}
	}
	return out
}

// detectByPattern looks for constructs that pin a header to one language.
func detectByPattern(content []byte) Language {
	if len(content) == 0 {
		return Unknown
	}

	objc := bytes.Contains(content, []byte("@interface")) ||
		bytes.Contains(content, []byte("@implementation")) ||
		bytes.Contains(content, []byte("@protocol")) ||
		bytes.Contains(content, []byte("#import"))

	cpp := bytes.Contains(content, []byte("namespace ")) ||
		bytes.Contains(content, []byte("template <")) ||
		bytes.Contains(content, []byte("template<")) ||
		bytes.Contains(content, []byte("std::")) ||
		bytes.Contains(content, []byte("public:")) ||
		bytes.Contains(content, []byte("private:"))

	switch {
	case objc && cpp:
		return ObjCPP
	case objc:
		return ObjC
	case cpp:
		return CPP
	default:
		return Unknown
	}
}

// FromDriver guesses the language from a compiler executable name:
// drivers ending in "++" (clang++, g++) compile C++.
func FromDriver(executable string) Language {
	base := strings.TrimSuffix(filepath.Base(executable), ".exe")
	if strings.HasSuffix(base, "++") {
		return CPP
	}
	return C
}

func contains(langs []Language, lang Language) bool {
	for _, l := range langs {
		if l == lang {
			return true
		}
	}
	return false
}
