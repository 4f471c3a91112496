package runner

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/cctok/pkg/fsutil"
	"github.com/yaklabco/cctok/pkg/tokenize"
)

// Runner tokenizes many files with one Tokenizer.
type Runner struct {
	// Tokenizer turns each resolved command into tokens.
	Tokenizer *tokenize.Tokenizer

	// Logger receives warnings about ambiguous database entries and
	// per-file debug output. Nil discards them.
	Logger *log.Logger
}

// New creates a Runner around tokenizer.
func New(tokenizer *tokenize.Tokenizer) *Runner {
	return &Runner{Tokenizer: tokenizer}
}

// Run discovers files under opts.Paths and tokenizes them concurrently.
// Outcomes are ordered by path. A file that fails to resolve or tokenize
// records its error in its outcome; Run itself only fails when discovery
// fails or ctx is done.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	res := newResolver(opts, workDir, logger)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				if ctx.Err() != nil {
					continue
				}
				outcomes[idx] = r.process(ctx, res, files[idx], logger)
				done[idx] = true
			}
		}()
	}

feed:
	for idx := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- idx:
		}
	}
	close(workCh)
	wg.Wait()

	for idx, outcome := range outcomes {
		if done[idx] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// process resolves and tokenizes one file.
func (r *Runner) process(ctx context.Context, res *resolver, path string, logger *log.Logger) FileOutcome {
	outcome := FileOutcome{Path: path}

	cmd, source, err := res.resolve(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Command = cmd
	outcome.Source = source

	tokens, err := r.Tokenizer.TokenizeCommand(ctx, cmd)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Tokens = tokens

	if res.opts.KeepContent {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			outcome.Tokens = nil
			outcome.Error = err
			return outcome
		}
		outcome.Content = content
	}

	logger.Debug("tokenized file", "path", path, "source", source, "tokens", len(tokens))
	return outcome
}
