package token

import (
	"errors"
	"fmt"
)

// ErrInvalidStream indicates a token sequence that breaks the ordering invariants.
var ErrInvalidStream = errors.New("invalid token stream")

// Validate checks that a token sequence is well formed:
//   - every location is valid and Start <= End;
//   - tokens are strictly ascending by Start;
//   - no token starts at or before the end of its predecessor.
func Validate(tokens []Token) error {
	for i, tok := range tokens {
		if !tok.Start.IsValid() || !tok.End.IsValid() {
			return fmt.Errorf("%w: token %d has invalid location %s", ErrInvalidStream, i, tok)
		}
		if tok.End.Less(tok.Start) {
			return fmt.Errorf("%w: token %d ends before it starts: %s", ErrInvalidStream, i, tok)
		}
		if i == 0 {
			continue
		}
		prev := tokens[i-1]
		if tok.Start.Compare(prev.End) <= 0 {
			return fmt.Errorf("%w: token %d (%s) overlaps or precedes token %d (%s)",
				ErrInvalidStream, i, tok, i-1, prev)
		}
	}
	return nil
}
