package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/amonks/tasktree/internal/config"
	"github.com/amonks/tasktree/internal/logging"
	"github.com/amonks/tasktree/internal/paths"
	"github.com/amonks/tasktree/internal/ui"
	"github.com/spf13/cobra"
)

// StoreEnvVar overrides the task file location.
const StoreEnvVar = "TASKTREE_FILE"

var rootCmd = &cobra.Command{
	Use:               "tt",
	Short:             "tasktree - a task forest with dependencies and a golden path",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupApp,
}

var (
	rootFile      string
	rootLogLevel  string
	rootLogFormat string
	rootColor     string
)

// appEnv is the per-invocation environment shared by every command.
type appEnv struct {
	cfg       *config.Config
	storePath string
	threshold int
	logger    *slog.Logger
	styles    ui.Styles
}

var app appEnv

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootFile, "file", "f", "", "Task file (default from "+StoreEnvVar+" or tasktree.toml)")
	flags.StringVar(&rootLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&rootLogFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVar(&rootColor, "color", "", "Color output (auto, always, never)")
}

func setupApp(cmd *cobra.Command, args []string) error {
	logger, err := logging.New(rootLogLevel, rootLogFormat, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cwd, err := paths.WorkingDir()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	storePath, err := paths.ResolveWithDefault(rootFile, func() (string, error) {
		if env := os.Getenv(StoreEnvVar); env != "" {
			return env, nil
		}
		return cfg.Store.Path, nil
	})
	if err != nil {
		return err
	}

	colorValue := cfg.Display.Color
	if cmd.Flags().Changed("color") {
		colorValue = rootColor
	}
	colorMode, err := ui.ParseColorMode(colorValue)
	if err != nil {
		return fmt.Errorf("--color: %w", err)
	}

	app = appEnv{
		cfg:       cfg,
		storePath: paths.Absolute(cwd, storePath),
		threshold: cfg.Display.TextLengthThreshold,
		logger:    logger,
		styles:    ui.NewStyles(colorMode, cmd.OutOrStdout()),
	}
	logger.Debug("configured", "store", app.storePath, "threshold", app.threshold, "color", colorMode)
	return nil
}
