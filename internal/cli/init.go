package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cctok/internal/configloader"
	"github.com/yaklabco/cctok/internal/logging"
	"github.com/yaklabco/cctok/pkg/compiledb"
	"github.com/yaklabco/cctok/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force    bool
	output   string
	buildDir string
	frontend string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new cctok configuration file",
		Long: `Create a new .cctok.yml configuration file in the current directory.

Every setting is written as a comment showing its default. When a
compile_commands.json is found in the current directory's "build"
subdirectory or a parent, build_dir is set to point at it.

Examples:
  cctok init                        Create .cctok.yml
  cctok init --build-dir out        Set build_dir explicitly
  cctok init --frontend clang       Lex with the clang driver
  cctok init --output custom.yml    Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "Output file path")
	cmd.Flags().StringVar(&flags.buildDir, "build-dir", "", "Directory containing compile_commands.json")
	cmd.Flags().StringVar(&flags.frontend, "frontend", "", "Raw lexer: builtin or clang")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	frontend := config.FrontendKind(flags.frontend)
	if frontend != "" && !frontend.IsValid() {
		return fmt.Errorf("%w: invalid frontend %q: must be builtin or clang", ErrUsage, flags.frontend)
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	buildDir := flags.buildDir
	if buildDir == "" {
		buildDir = detectBuildDir(ctx, filepath.Dir(absPath), logger)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		BuildDir: buildDir,
		Frontend: frontend,
	})

	err = configloader.WriteConfig(ctx, absPath, content, flags.force)
	if errors.Is(err, os.ErrExist) {
		if !configloader.IsInteractive() {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		if !confirm(cmd, fmt.Sprintf("Overwrite %s? [y/N] ", flags.output)) {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
		err = configloader.WriteConfig(ctx, absPath, content, true)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	if buildDir != "" {
		logger.Info("compile commands will be read from", "build_dir", buildDir)
	}
	logger.Info("run 'cctok tokens <file>' to tokenize a source file")

	return nil
}

// detectBuildDir returns the directory of the nearest compilation database
// relative to dir, or "" when there is none or it sits in dir itself.
func detectBuildDir(ctx context.Context, dir string, logger *log.Logger) string {
	db, err := compiledb.Find(ctx, dir)
	if err != nil {
		if !compiledb.IsNotFound(err) {
			logger.Warn("ignoring unreadable compilation database", logging.FieldError, err)
		}
		return ""
	}

	rel, err := filepath.Rel(dir, db.Directory())
	if err != nil || rel == "." {
		return ""
	}
	logger.Info("found compilation database", logging.FieldDatabase, db.Path())
	return filepath.ToSlash(rel)
}

// confirm prompts on the error stream and reads a yes/no answer.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
