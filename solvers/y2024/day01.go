package y2024

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aoc-runner/aoc/internal/solver"
)

func init() {
	solver.MustRegister(2024, "Day01", func() solver.Solver { return &Day01{} })
}

// Day01 solves Advent of Code 2024, day 1: Historian Hysteria.
type Day01 struct {
	solver.Base
	left  []int
	right []int
}

// Setup parses the two location id columns.
func (d *Day01) Setup(_ context.Context, inputPath string) error {
	if err := d.SetInput(inputPath); err != nil {
		return err
	}
	lines, err := d.Lines()
	if err != nil {
		return err
	}

	d.left = make([]int, 0, len(lines))
	d.right = make([]int, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want 2 columns, got %d", i+1, len(fields))
		}
		left, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		right, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		d.left = append(d.left, left)
		d.right = append(d.right, right)
	}
	return nil
}

// Part1 sums the distances between the sorted lists.
func (d *Day01) Part1(context.Context) (string, error) {
	left := append([]int(nil), d.left...)
	right := append([]int(nil), d.right...)
	sort.Ints(left)
	sort.Ints(right)

	total := 0
	for i := range left {
		total += abs(left[i] - right[i])
	}
	return strconv.Itoa(total), nil
}

// Part2 computes the similarity score of the left list against the right.
func (d *Day01) Part2(context.Context) (string, error) {
	counts := make(map[int]int, len(d.right))
	for _, id := range d.right {
		counts[id]++
	}
	score := 0
	for _, id := range d.left {
		score += id * counts[id]
	}
	return strconv.Itoa(score), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
