// Package token defines the classified lexical tokens produced by the tokenizer,
// their one-based source locations, and helpers for mapping byte offsets to locations.
package token

import "fmt"

// TokenType classifies a token.
//
//nolint:revive // TokenType reads better than Type at call sites outside the package.
type TokenType uint8

// Token types. The zero value is Unknown, which also covers plain identifiers.
const (
	Unknown TokenType = iota
	Comment
	Keyword
	Operator
	LiteralString
	LiteralCharacter
	LiteralNumeric
	PreprocessingDirective
	InclusionDirective
	MacroDefinition
)

//nolint:gochecknoglobals // Read-only lookup table.
var typeNames = [...]string{
	Unknown:                "unknown",
	Comment:                "comment",
	Keyword:                "keyword",
	Operator:               "operator",
	LiteralString:          "literalString",
	LiteralCharacter:       "literalCharacter",
	LiteralNumeric:         "literalNumeric",
	PreprocessingDirective: "preprocessingDirective",
	InclusionDirective:     "inclusionDirective",
	MacroDefinition:        "macroDefinition",
}

// AllTypes returns every token type in declaration order.
func AllTypes() []TokenType {
	types := make([]TokenType, len(typeNames))
	for i := range typeNames {
		types[i] = TokenType(i)
	}
	return types
}

// String returns the lowerCamel name of the type.
func (t TokenType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// IsDirective returns true for the three preprocessor directive types.
func (t TokenType) IsDirective() bool {
	return t == PreprocessingDirective || t == InclusionDirective || t == MacroDefinition
}

// SemanticType returns the LSP semantic token type for t: "comment",
// "keyword", "operator", "string", "number" or "macro". Character literals
// map to "number" and all directives to "macro". Unknown has no semantic
// type and returns "".
func (t TokenType) SemanticType() string {
	switch t {
	case Comment:
		return "comment"
	case Keyword:
		return "keyword"
	case Operator:
		return "operator"
	case LiteralString:
		return "string"
	case LiteralCharacter, LiteralNumeric:
		return "number"
	case PreprocessingDirective, InclusionDirective, MacroDefinition:
		return "macro"
	default:
		return ""
	}
}

// ParseTokenType converts a name produced by String back to a TokenType.
func ParseTokenType(name string) (TokenType, error) {
	for i, n := range typeNames {
		if n == name {
			return TokenType(i), nil
		}
	}
	return Unknown, fmt.Errorf("unknown token type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t TokenType) MarshalText() ([]byte, error) {
	if int(t) >= len(typeNames) {
		return nil, fmt.Errorf("invalid token type %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TokenType) UnmarshalText(text []byte) error {
	parsed, err := ParseTokenType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Token is a classified span of source text.
// End is the location of the token's last character, inclusive.
type Token struct {
	Start FileLocation `json:"startLocation" msgpack:"startLocation"`
	End   FileLocation `json:"endLocation" msgpack:"endLocation"`
	Type  TokenType    `json:"type" msgpack:"type"`
}

// IsSingleLine returns true if the token starts and ends on the same line.
func (t Token) IsSingleLine() bool {
	return t.Start.Line == t.End.Line
}

// Contains returns true if loc falls within the token's span.
func (t Token) Contains(loc FileLocation) bool {
	return t.Start.Compare(loc) <= 0 && loc.Compare(t.End) <= 0
}

// String formats the token for debugging, e.g. "keyword 1:1-1:3".
func (t Token) String() string {
	return fmt.Sprintf("%s %s-%s", t.Type, t.Start, t.End)
}
