package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aoc-runner/aoc/internal/config"
	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/render"
)

func newListCommand(cfg *config.Config, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "list <year>",
		Short: "Show the solvers registered for a year and which inputs exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			resolver := input.NewResolver(cfg.SolutionsRoot)
			handles := registry.FindAll(year)
			entries := make([]render.CatalogEntry, 0, len(handles))
			for _, handle := range handles {
				dir := resolver.DayDir(handle.Key)
				entries = append(entries, render.CatalogEntry{
					Day:       handle.Key.Day,
					Name:      handle.Name,
					Input:     input.Check(filepath.Join(dir, input.ProductionFile)) == nil,
					TestPart1: input.Check(filepath.Join(dir, input.TestPart1File)) == nil,
					TestPart2: input.Check(filepath.Join(dir, input.TestPart2File)) == nil,
				})
			}

			unresolved := registry.Unresolved(year)
			logger.With("year", year, "solvers", len(entries), "unresolved", len(unresolved)).Debug("listed solvers")
			fmt.Fprint(cmd.OutOrStdout(), render.Catalog(year, entries, unresolved))
			return nil
		},
	}
}
