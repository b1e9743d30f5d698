package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aoc-runner/aoc/internal/config"
	"github.com/aoc-runner/aoc/internal/render"
	"github.com/aoc-runner/aoc/internal/scaffold"
)

func newCreateCommand(cfg *config.Config, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "create <year> [day]",
		Short: "Generate input folders and solver boilerplate",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, day, err := parseYearDay(args)
			if err != nil {
				return err
			}

			scaffolder, err := scaffold.New(cfg.SolutionsRoot, cfg.SolversDir, cfg.ModulePath)
			if err != nil {
				return err
			}

			var result scaffold.Result
			if day == nil {
				result, err = scaffolder.CreateYear(year)
			} else {
				result, err = scaffolder.CreateDay(year, *day)
			}
			if err != nil {
				return fmt.Errorf("create %d: %w", year, err)
			}

			for _, path := range result.Skipped {
				if strings.HasSuffix(path, ".go") && filepath.Base(path) != "doc.go" {
					logger.With("path", path).Warn("solver file already exists; left untouched")
				}
			}
			logger.With("year", year, "created", len(result.Created), "skipped", len(result.Skipped)).Info("scaffold finished")

			fmt.Fprint(cmd.OutOrStdout(), render.Scaffold(result.Created, result.Skipped))
			if len(result.Created) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Rebuild aoc to register new solvers.")
			}
			return nil
		},
	}
}
