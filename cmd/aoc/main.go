package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aoc-runner/aoc/internal/config"
	"github.com/aoc-runner/aoc/internal/logging"
	"github.com/aoc-runner/aoc/internal/render"
	"github.com/aoc-runner/aoc/internal/solver"
	"github.com/aoc-runner/aoc/internal/telemetry"
	_ "github.com/aoc-runner/aoc/solvers/all"
)

// Version is set at build time.
var Version = "dev"

// registry is the solver table the commands read. Solver packages fill it
// from init through the blank import above.
var registry = solver.Default

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, render.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(
		ctx,
		logging.WithLevel(cfg.LogLevel),
		logging.WithMaxFiles(cfg.LogMaxFiles),
	)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() {
		if closeErr := logger.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close logger: %v\n", closeErr)
		}
	}()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Settings{
			Endpoint: cfg.Telemetry.Endpoint,
			Version:  Version,
			RunID:    logger.RunID(),
		})
		if err != nil {
			return fmt.Errorf("initialize telemetry: %w", err)
		}
		defer shutdown()
	}

	cmd := newRootCommand(cfg, logger.Logger)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Logger.Error("command failed", "err", err)
		return err
	}
	return nil
}

func newRootCommand(cfg *config.Config, logger *log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "aoc",
		Short:         "Run, time and scaffold Advent of Code solvers",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.SetVersionTemplate("{{printf \"%s\\n\" .Version}}")
	root.AddCommand(
		newSolveCommand(cfg, logger),
		newCreateCommand(cfg, logger),
		newListCommand(cfg, logger),
	)

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if logger == nil {
			return errors.New("logger is required")
		}
		if cfg == nil {
			return errors.New("config is required")
		}
		logger.With("command", cmd.Name(), "args", args).Debug("command invocation")
		return nil
	}

	return root
}
