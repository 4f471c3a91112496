package tokenize

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/token"
)

// Result pairs a compile command with its tokens.
type Result struct {
	Command compiledb.CompileCommand
	Tokens  []token.Token
}

// TokenizeAll tokenizes cmds with at most jobs calls in flight; jobs <= 0
// means GOMAXPROCS. Results are in input order. The first failure cancels
// the remaining calls, and no results are returned with an error.
func (t *Tokenizer) TokenizeAll(ctx context.Context, cmds []compiledb.CompileCommand, jobs int) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(cmds))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, cmd := range cmds {
		group.Go(func() error {
			tokens, err := t.TokenizeCommand(groupCtx, cmd)
			if err != nil {
				return err
			}
			results[i] = Result{Command: cmd.Clone(), Tokens: tokens}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	return results, nil
}
