package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aoc-runner/aoc/internal/config"
	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/render"
	"github.com/aoc-runner/aoc/internal/runner"
	"github.com/aoc-runner/aoc/internal/solve"
)

func newSolveCommand(cfg *config.Config, logger *log.Logger) *cobra.Command {
	var (
		useTest bool
		part    int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "solve <year> [day]",
		Short: "Run solvers for a year or a single day and report answers with timings",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, day, err := parseYearDay(args)
			if err != nil {
				return err
			}
			req := solve.Request{Year: year, Day: day, UseTest: useTest}
			if cmd.Flags().Changed("part") {
				selected, err := parsePartFlag(part)
				if err != nil {
					return err
				}
				req.Part = selected
			}

			if strings.TrimSpace(output) == "" {
				output = cfg.Output
			}
			format, err := render.ParseFormat(output)
			if err != nil {
				return err
			}

			service, err := solve.NewService(
				registry,
				input.NewResolver(cfg.SolutionsRoot),
				runner.NewExecutor(),
				logger,
			)
			if err != nil {
				return err
			}

			result, err := service.Run(cmd.Context(), req)
			if err != nil {
				if len(result.Rows) > 0 {
					if renderErr := render.Render(cmd.OutOrStdout(), result, format); renderErr != nil {
						logger.Warn("render partial report", "err", renderErr)
					}
				}
				return err
			}
			logger.With(
				"year", result.Year,
				"mode", string(result.Mode),
				"parts", len(result.Rows),
				"failures", result.Failures(),
				"total_ms", result.TotalMs(),
			).Info("solve finished")
			return render.Render(cmd.OutOrStdout(), result, format)
		},
	}

	cmd.Flags().BoolVarP(&useTest, "test", "t", false, "use the TestInputPart files instead of Input.txt")
	cmd.Flags().IntVarP(&part, "part", "p", 0, "run only part 1 or part 2")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml (default from config)")
	return cmd
}
