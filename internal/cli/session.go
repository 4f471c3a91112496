package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/cctok/internal/configloader"
	"github.com/yaklabco/cctok/internal/logging"
	"github.com/yaklabco/cctok/pkg/config"
	"github.com/yaklabco/cctok/pkg/frontend"
	"github.com/yaklabco/cctok/pkg/tokenize"
)

// session is the resolved configuration and logger for one command run.
type session struct {
	cfg     *config.Config
	workDir string
	logger  *log.Logger
}

// newSession loads configuration with cliCfg as the highest-precedence
// layer and builds a logger on the command's error stream. The returned
// context carries that logger.
func newSession(cmd *cobra.Command, globals *globalFlags, cliCfg *config.Config) (context.Context, *session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("get working directory: %w", err)
	}

	if cmd.Flags().Changed("color") {
		cliCfg.Color = config.ColorMode(globals.color)
	}
	if globals.logLevel != "" {
		cliCfg.LogLevel = globals.logLevel
	}
	if globals.debug {
		cliCfg.LogLevel = "debug"
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	cfg := loadResult.Config
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldFrontend, cfg.Frontend,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		"build_dir", cfg.BuildDir,
	)

	return logging.WithLogger(ctx, logger), &session{
		cfg:     cfg,
		workDir: workDir,
		logger:  logger,
	}, nil
}

// tokenizer builds a Tokenizer for the configured frontend.
func (s *session) tokenizer() *tokenize.Tokenizer {
	var fe frontend.Frontend = frontend.Builtin{}
	if s.cfg.Frontend == config.FrontendClang {
		fe = frontend.Clang{Path: s.cfg.ClangPath, Logger: s.logger}
	}

	return tokenize.New(
		tokenize.WithFrontend(fe),
		tokenize.WithPlaceholderExecutable(s.cfg.PlaceholderExecutable),
		tokenize.WithWorkingDirectory(s.workDir),
		tokenize.WithLogger(s.logger),
	)
}
