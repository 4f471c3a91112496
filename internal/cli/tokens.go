package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/cctok/internal/logging"
	"github.com/yaklabco/cctok/pkg/config"
	"github.com/yaklabco/cctok/pkg/reporter"
	"github.com/yaklabco/cctok/pkg/runner"
)

type tokensFlags struct {
	format          string
	frontend        string
	ignore          []string
	highlight       bool
	detailedSummary bool
	noSummary       bool
	compact         bool
}

func newTokensCommand(globals *globalFlags) *cobra.Command {
	cliCfg := &config.Config{}
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [paths...] [-- flags...]",
		Short: "Tokenize C-family source files",
		Long:  tokensLongDescription,
		Args:  usageArgs(cobra.ArbitraryArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, globals, cliCfg, flags)
		},
	}

	addTokensFlags(cmd, cliCfg, flags)

	return cmd
}

const tokensLongDescription = `Tokenize C, C++ and Objective-C source files.

Each file's compile command comes from the first compile_commands.json that
lists it: the --build-dir directory, then the current directory, then the
file's directory and its parents (each with a "build" subdirectory). Files
no database lists are tokenized with a bare command.

Compiler flags after "--" replace database lookup for every file.

By default all recognized source files under the current directory are
tokenized.

Examples:
  cctok tokens src/main.c                 # Token table for one file
  cctok tokens -p build src/              # Use build/compile_commands.json
  cctok tokens --highlight src/main.c     # Print highlighted source
  cctok tokens --format json src/         # Machine-readable output
  cctok tokens a.cpp -- -std=c++20 -xc++  # Tokenize with explicit flags`

func addTokensFlags(cmd *cobra.Command, cfg *config.Config, flags *tokensFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, msgpack, html")
	cmd.Flags().StringVar(&flags.frontend, "frontend", "", "raw lexer: builtin, clang")
	cmd.Flags().StringVar(&cfg.ClangPath, "clang-path", "", "clang executable for the clang frontend")
	cmd.Flags().StringVar(&cfg.PlaceholderExecutable, "placeholder", "",
		"executable used for flag-only and fallback commands")
	cmd.Flags().StringVarP(&cfg.BuildDir, "build-dir", "p", "", "directory containing compile_commands.json")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.highlight, "highlight", false, "print highlighted source instead of a token table")
	cmd.Flags().BoolVar(&flags.detailedSummary, "summary", false, "print a per-type token summary")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
}

func runTokens(cmd *cobra.Command, args []string, globals *globalFlags, cliCfg *config.Config, flags *tokensFlags) error {
	paths, compilerFlags, useFlags := splitAtDash(cmd, args)

	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if flags.frontend != "" {
		cliCfg.Frontend = config.FrontendKind(flags.frontend)
		if !cliCfg.Frontend.IsValid() {
			return fmt.Errorf("%w: invalid frontend %q: must be builtin or clang", ErrUsage, flags.frontend)
		}
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}

	ctx, sess, err := newSession(cmd, globals, cliCfg)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	tokRunner := runner.New(sess.tokenizer())
	tokRunner.Logger = sess.logger

	runOpts := runner.Options{
		Paths:                 paths,
		WorkingDir:            sess.workDir,
		ExcludeGlobs:          cfg.Ignore,
		Jobs:                  cfg.Jobs,
		BuildDir:              cfg.BuildDir,
		Flags:                 compilerFlags,
		UseFlags:              useFlags,
		KeepContent:           format == reporter.FormatText || format == reporter.FormatHTML,
		PlaceholderExecutable: cfg.PlaceholderExecutable,
	}

	sess.logger.Debug("starting tokenizer run",
		"paths", runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		"use_flags", runOpts.UseFlags,
	)

	result, err := tokRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("tokenizer run failed: %w", err)
	}

	sess.logger.Debug("tokenizer run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldTokens, result.Stats.TokensTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		ErrorWriter:     cmd.ErrOrStderr(),
		Format:          format,
		Color:           string(cfg.Color),
		ShowSummary:     !flags.noSummary,
		DetailedSummary: flags.detailedSummary,
		Highlight:       flags.highlight,
		Compact:         flags.compact,
		TermWidth:       terminalWidth(cmd),
		WorkingDir:      sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrFilesFailed
	}
	return nil
}

// splitAtDash separates positional paths from compiler flags given after
// "--". useFlags is true whenever "--" was present, even with no flags.
func splitAtDash(cmd *cobra.Command, args []string) (paths, flags []string, useFlags bool) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil, false
	}
	return args[:dash], args[dash:], true
}

// terminalWidth returns the width of the output terminal, or 0 when the
// output is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	file, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
