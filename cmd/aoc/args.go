package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aoc-runner/aoc/internal/solver"
)

const (
	firstYear = 2015
	firstDay  = 1
	lastDay   = 25
)

var nowFn = time.Now

func parseYear(value string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: must be a number", value)
	}
	latest := nowFn().Year() + 1
	if year < firstYear || year > latest {
		return 0, fmt.Errorf("invalid year %d: must be between %d and %d", year, firstYear, latest)
	}
	return year, nil
}

func parseDay(value string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid day %q: must be a number", value)
	}
	if day < firstDay || day > lastDay {
		return 0, fmt.Errorf("invalid day %d: must be between %d and %d", day, firstDay, lastDay)
	}
	return day, nil
}

// parseYearDay reads "<year> [day]". The day is nil when omitted.
func parseYearDay(args []string) (int, *int, error) {
	if len(args) == 0 {
		return 0, nil, errors.New("year is required")
	}
	year, err := parseYear(args[0])
	if err != nil {
		return 0, nil, err
	}
	if len(args) < 2 {
		return year, nil, nil
	}
	day, err := parseDay(args[1])
	if err != nil {
		return 0, nil, err
	}
	return year, &day, nil
}

func parsePartFlag(value int) (*solver.Part, error) {
	part, err := solver.ParsePart(value)
	if err != nil {
		return nil, fmt.Errorf("--part: %w", err)
	}
	return &part, nil
}
