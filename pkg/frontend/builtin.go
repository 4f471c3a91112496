package frontend

import (
	"context"

	"github.com/yaklabco/cctok/pkg/fsutil"
)

// Builtin is the in-process raw lexer. It reads the source file itself
// and never executes the compiler named in the invocation.
type Builtin struct{}

// Lex implements Frontend.
func (Builtin) Lex(ctx context.Context, inv Invocation) (*Unit, error) {
	content, info, err := fsutil.ReadFile(ctx, inv.Source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, invocationErrorf(err, "cannot read source")
	}

	lang := inv.ResolveLanguage(content)
	tokens, err := Scan(ctx, content, lang)
	if err != nil {
		return nil, err
	}

	return &Unit{
		Path:     info.Path,
		Language: lang,
		Standard: inv.Standard,
		Content:  content,
		Tokens:   tokens,
	}, nil
}
