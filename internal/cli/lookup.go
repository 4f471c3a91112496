package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cctok/internal/logging"
	"github.com/yaklabco/cctok/pkg/config"
	"github.com/yaklabco/cctok/pkg/reporter"
	"github.com/yaklabco/cctok/pkg/runner"
)

type lookupFlags struct {
	format  string
	compact bool
}

func newLookupCommand(globals *globalFlags) *cobra.Command {
	cliCfg := &config.Config{}
	flags := &lookupFlags{}

	cmd := &cobra.Command{
		Use:   "lookup <file>",
		Short: "Print the compile commands for a file",
		Long: `Print every compile command that compile_commands.json lists for a file.

The database is searched for in the --build-dir directory, then the current
directory, then the file's directory and its parents. Exits with status 2
when no database lists the file.

Examples:
  cctok lookup src/main.c
  cctok lookup -p build src/main.c --format json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], globals, cliCfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, msgpack, html")
	cmd.Flags().StringVarP(&cliCfg.BuildDir, "build-dir", "p", "", "directory containing compile_commands.json")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")

	return cmd
}

func runLookup(cmd *cobra.Command, path string, globals *globalFlags, cliCfg *config.Config, flags *lookupFlags) error {
	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		cliCfg.Format = config.OutputFormat(flags.format)
	}

	ctx, sess, err := newSession(cmd, globals, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(sess.cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(sess.workDir, path)
	}

	cmds, database, err := runner.Lookup(ctx, runner.Options{
		WorkingDir: sess.workDir,
		BuildDir:   sess.cfg.BuildDir,
	}, absPath)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", path, err)
	}
	sess.logger.Debug("lookup finished",
		logging.FieldPath, absPath,
		logging.FieldDatabase, database,
		logging.FieldCommands, len(cmds),
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(sess.cfg.Color),
		Compact:     flags.compact,
		WorkingDir:  sess.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.ReportCommands(ctx, path, cmds); err != nil {
		return fmt.Errorf("report commands: %w", err)
	}

	if len(cmds) == 0 {
		return ErrNoCommands
	}
	return nil
}
