package y2024

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aoc-runner/aoc/internal/solver"
)

func init() {
	solver.MustRegister(2024, "Day02", func() solver.Solver { return &Day02{} })
}

// Day02 solves Advent of Code 2024, day 2: Red-Nosed Reports.
type Day02 struct {
	solver.Base
	reports [][]int
}

// Setup parses one report of levels per line.
func (d *Day02) Setup(_ context.Context, inputPath string) error {
	if err := d.SetInput(inputPath); err != nil {
		return err
	}
	lines, err := d.Lines()
	if err != nil {
		return err
	}

	d.reports = make([][]int, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		levels := make([]int, len(fields))
		for j, field := range fields {
			level, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			levels[j] = level
		}
		d.reports = append(d.reports, levels)
	}
	return nil
}

// Part1 counts the safe reports.
func (d *Day02) Part1(context.Context) (string, error) {
	safe := 0
	for _, report := range d.reports {
		if isSafe(report) {
			safe++
		}
	}
	return strconv.Itoa(safe), nil
}

// Part2 counts the reports that are safe after removing at most one level.
func (d *Day02) Part2(ctx context.Context) (string, error) {
	safe := 0
	for _, report := range d.reports {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if isSafe(report) || safeWithDampener(report) {
			safe++
		}
	}
	return strconv.Itoa(safe), nil
}

func safeWithDampener(levels []int) bool {
	trimmed := make([]int, 0, len(levels))
	for skip := range levels {
		trimmed = trimmed[:0]
		trimmed = append(trimmed, levels[:skip]...)
		trimmed = append(trimmed, levels[skip+1:]...)
		if isSafe(trimmed) {
			return true
		}
	}
	return false
}

// isSafe reports whether levels move strictly one way in steps of 1 to 3.
func isSafe(levels []int) bool {
	if len(levels) < 2 {
		return true
	}
	increasing := levels[1] > levels[0]
	for i := 1; i < len(levels); i++ {
		step := levels[i] - levels[i-1]
		if !increasing {
			step = -step
		}
		if step < 1 || step > 3 {
			return false
		}
	}
	return true
}
