package tokenize

import (
	"strings"

	"github.com/yaklabco/cctok/pkg/langdetect"
)

type wordSet map[string]struct{}

func newWordSet(groups ...[]string) wordSet {
	set := make(wordSet)
	for _, words := range groups {
		for _, w := range words {
			set[w] = struct{}{}
		}
	}
	return set
}

func (s wordSet) has(word string) bool {
	_, ok := s[word]
	return ok
}

// C89 keywords.
//
//nolint:gochecknoglobals // Read-only word list.
var c89Keywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default", "do",
	"double", "else", "enum", "extern", "float", "for", "goto", "if", "int",
	"long", "register", "return", "short", "signed", "sizeof", "static",
	"struct", "switch", "typedef", "union", "unsigned", "void", "volatile",
	"while",
}

// Reserved underscore spellings. Clang accepts them in every C mode.
//
//nolint:gochecknoglobals // Read-only word list.
var cReservedKeywords = []string{
	"_Alignas", "_Alignof", "_Atomic", "_BitInt", "_Bool", "_Complex",
	"_Decimal128", "_Decimal32", "_Decimal64", "_Generic", "_Imaginary",
	"_Noreturn", "_Static_assert", "_Thread_local",
}

//nolint:gochecknoglobals // Read-only word list.
var c99Keywords = []string{"inline", "restrict"}

//nolint:gochecknoglobals // Read-only word list.
var c23Keywords = []string{
	"alignas", "alignof", "bool", "constexpr", "false", "nullptr",
	"static_assert", "thread_local", "true", "typeof", "typeof_unqual",
}

// Plain-word GNU extensions of the gnu* C modes.
//
//nolint:gochecknoglobals // Read-only word list.
var gnuCKeywords = []string{"asm", "inline", "typeof"}

// C++98 keywords. The alternative operator spellings are in cppOperatorWords.
//
//nolint:gochecknoglobals // Read-only word list.
var cpp98Keywords = []string{
	"asm", "auto", "bool", "break", "case", "catch", "char", "class", "const",
	"const_cast", "continue", "default", "delete", "do", "double",
	"dynamic_cast", "else", "enum", "explicit", "export", "extern", "false",
	"float", "for", "friend", "goto", "if", "inline", "int", "long", "mutable",
	"namespace", "new", "operator", "private", "protected", "public",
	"register", "reinterpret_cast", "return", "short", "signed", "sizeof",
	"static", "static_cast", "struct", "switch", "template", "this", "throw",
	"true", "try", "typedef", "typeid", "typename", "union", "unsigned",
	"using", "virtual", "void", "volatile", "wchar_t", "while",
}

//nolint:gochecknoglobals // Read-only word list.
var cpp11Keywords = []string{
	"alignas", "alignof", "char16_t", "char32_t", "constexpr", "decltype",
	"noexcept", "nullptr", "static_assert", "thread_local",
}

//nolint:gochecknoglobals // Read-only word list.
var cpp20Keywords = []string{
	"char8_t", "concept", "consteval", "constinit", "co_await", "co_return",
	"co_yield", "requires",
}

//nolint:gochecknoglobals // Read-only word list.
var gnuCPPKeywords = []string{"typeof"}

// GNU and Clang extension keywords accepted in every C-family dialect.
//
//nolint:gochecknoglobals // Read-only word list.
var extensionKeywords = []string{
	"__asm", "__asm__", "__attribute", "__attribute__", "__extension__",
	"__inline", "__inline__", "__restrict", "__restrict__", "__typeof",
	"__typeof__", "__volatile__", "__alignof__", "__label__", "__thread",
	"__auto_type", "__int128", "__builtin_va_arg", "__builtin_offsetof",
}

//nolint:gochecknoglobals // Read-only word list.
var cppOperatorWords = []string{
	"and", "and_eq", "bitand", "bitor", "compl", "not", "not_eq", "or",
	"or_eq", "xor", "xor_eq",
}

// Words that follow '@' in Objective-C.
//
//nolint:gochecknoglobals // Read-only word list.
var objcAtKeywords = []string{
	"interface", "implementation", "end", "protocol", "class", "property",
	"synthesize", "dynamic", "selector", "encode", "synchronized", "try",
	"catch", "finally", "throw", "autoreleasepool", "public", "private",
	"protected", "package", "optional", "required", "compatibility_alias",
	"defs", "import", "available",
}

// dialect is a language standard revision, as a year, and whether GNU
// extensions are enabled.
type dialect struct {
	year int
	gnu  bool
}

// Clang's defaults when the command line has no -std.
//
//nolint:gochecknoglobals // Read-only defaults.
var (
	defaultCDialect   = dialect{year: 2017, gnu: true}
	defaultCPPDialect = dialect{year: 2017, gnu: true}
)

// -std values by revision.
//
//nolint:gochecknoglobals // Built once from the tables below.
var (
	cStandards = standards(map[int][]string{
		1989: {"c89", "c90", "iso9899:1990", "iso9899:199409", "gnu89", "gnu90"},
		1999: {"c99", "c9x", "iso9899:1999", "iso9899:199x", "gnu99", "gnu9x"},
		2011: {"c11", "c1x", "iso9899:2011", "gnu11", "gnu1x"},
		2017: {"c17", "c18", "iso9899:2017", "iso9899:2018", "gnu17", "gnu18"},
		2023: {"c23", "c2x", "iso9899:2024", "gnu23", "gnu2x"},
		2029: {"c2y", "gnu2y"},
	})
	cppStandards = standards(map[int][]string{
		1998: {"c++98", "c++03", "gnu++98", "gnu++03"},
		2011: {"c++11", "c++0x", "gnu++11", "gnu++0x"},
		2014: {"c++14", "c++1y", "gnu++14", "gnu++1y"},
		2017: {"c++17", "c++1z", "gnu++17", "gnu++1z"},
		2020: {"c++20", "c++2a", "gnu++20", "gnu++2a"},
		2023: {"c++23", "c++2b", "gnu++23", "gnu++2b"},
		2026: {"c++26", "c++2c", "gnu++26", "gnu++2c"},
	})
)

func standards(byYear map[int][]string) map[string]dialect {
	out := make(map[string]dialect)
	for year, names := range byYear {
		for _, name := range names {
			out[name] = dialect{year: year, gnu: strings.HasPrefix(name, "gnu")}
		}
	}
	return out
}

// parseDialect maps a -std value to a dialect of lang. Empty, unknown or
// other-language values fall back to the compiler default.
func parseDialect(lang langdetect.Language, std string) dialect {
	name := strings.ToLower(std)
	if lang.IsCPlusPlus() {
		if d, ok := cppStandards[name]; ok {
			return d
		}
		return defaultCPPDialect
	}
	if d, ok := cStandards[name]; ok {
		return d
	}
	return defaultCDialect
}

//nolint:gochecknoglobals // Built once from the lists above.
var (
	extensionSet   = newWordSet(extensionKeywords)
	c89Set         = newWordSet(c89Keywords, cReservedKeywords)
	c99Set         = newWordSet(c99Keywords)
	c23Set         = newWordSet(c23Keywords)
	gnuCSet        = newWordSet(gnuCKeywords)
	cpp98Set       = newWordSet(cpp98Keywords)
	cpp11Set       = newWordSet(cpp11Keywords)
	cpp20Set       = newWordSet(cpp20Keywords)
	gnuCPPSet      = newWordSet(gnuCPPKeywords)
	cppOperatorSet = newWordSet(cppOperatorWords)
	objcAtSet      = newWordSet(objcAtKeywords)
)

// vocabulary is the identifier classification for one language dialect.
type vocabulary struct {
	keywords  []wordSet
	operators wordSet
	atWords   wordSet
}

func vocabularyFor(lang langdetect.Language, std string) vocabulary {
	d := parseDialect(lang, std)
	v := vocabulary{keywords: []wordSet{extensionSet}}

	if lang.IsCPlusPlus() {
		v.keywords = append(v.keywords, cpp98Set)
		if d.year >= 2011 {
			v.keywords = append(v.keywords, cpp11Set)
		}
		if d.year >= 2020 {
			v.keywords = append(v.keywords, cpp20Set)
		}
		if d.gnu {
			v.keywords = append(v.keywords, gnuCPPSet)
		}
		v.operators = cppOperatorSet
	} else {
		v.keywords = append(v.keywords, c89Set)
		if d.year >= 1999 {
			v.keywords = append(v.keywords, c99Set)
		}
		if d.year >= 2023 {
			v.keywords = append(v.keywords, c23Set)
		}
		if d.gnu {
			v.keywords = append(v.keywords, gnuCSet)
		}
	}

	if lang.IsObjC() {
		v.atWords = objcAtSet
	}
	return v
}

func (v vocabulary) isKeyword(word string) bool {
	for _, set := range v.keywords {
		if set.has(word) {
			return true
		}
	}
	return false
}

// IsKeyword reports whether word is reserved in lang under the -std value
// std. An empty std means the compiler's default standard.
func IsKeyword(lang langdetect.Language, std, word string) bool {
	return vocabularyFor(lang, std).isKeyword(word)
}
