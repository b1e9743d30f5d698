package solver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Solver is the contract every puzzle solution implements.
//
// The harness calls Setup with the resolved input path immediately before each
// part, so an instance never observes two different inputs.
type Solver interface {
	Setup(ctx context.Context, inputPath string) error
	Part1(ctx context.Context) (string, error)
	Part2(ctx context.Context) (string, error)
}

// Factory builds a fresh Solver instance.
type Factory func() Solver

// Key identifies one solver by year and day.
type Key struct {
	Year int
	Day  int
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%02d", k.Year, k.Day)
}

// Base is an embeddable helper holding the input path handed to Setup.
// Parts that are not yet implemented answer "0".
type Base struct {
	inputPath string
}

// SetInput records the input path for later reads.
func (b *Base) SetInput(inputPath string) error {
	if strings.TrimSpace(inputPath) == "" {
		return errors.New("input path must not be empty")
	}
	b.inputPath = inputPath
	return nil
}

// InputPath returns the path recorded by SetInput.
func (b *Base) InputPath() string {
	return b.inputPath
}

// Text reads the whole input file.
func (b *Base) Text() (string, error) {
	if b.inputPath == "" {
		return "", errors.New("input path has not been set; call SetInput first")
	}
	// #nosec G304 -- input paths are resolved by the harness from the solutions root.
	data, err := os.ReadFile(b.inputPath)
	if err != nil {
		return "", fmt.Errorf("read input %q: %w", b.inputPath, err)
	}
	return string(data), nil
}

// Lines reads the input file line by line, dropping a trailing empty line.
func (b *Base) Lines() ([]string, error) {
	if b.inputPath == "" {
		return nil, errors.New("input path has not been set; call SetInput first")
	}
	// #nosec G304 -- input paths are resolved by the harness from the solutions root.
	file, err := os.Open(b.inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", b.inputPath, err)
	}
	defer file.Close()

	lines := make([]string, 0, 64)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input %q: %w", b.inputPath, err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Part1 is the default answer for an unimplemented first part.
func (b *Base) Part1(context.Context) (string, error) {
	return "0", nil
}

// Part2 is the default answer for an unimplemented second part.
func (b *Base) Part2(context.Context) (string, error) {
	return "0", nil
}
