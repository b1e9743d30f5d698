// Package input resolves the data files solvers read.
//
// Files live under <root>/<year>/Inputs/<day %02d>/ and are named Input.txt in
// production mode or TestInputPart1.txt / TestInputPart2.txt in test mode.
package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aoc-runner/aoc/internal/solver"
)

const (
	// DefaultRoot is the solutions root relative to the working directory.
	DefaultRoot = "Solutions"
	// InputsDir is the per-year directory holding day folders.
	InputsDir = "Inputs"
	// ProductionFile is the real puzzle input.
	ProductionFile = "Input.txt"
	// TestPart1File is the example input for part 1.
	TestPart1File = "TestInputPart1.txt"
	// TestPart2File is the example input for part 2.
	TestPart2File = "TestInputPart2.txt"
)

// ErrInputNotFound reports that a resolved input file does not exist.
var ErrInputNotFound = errors.New("input not found")

// NotFoundError names the missing input file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrInputNotFound }

// Source is a resolved reference to one input file.
type Source struct {
	Path string
	File string
}

// Resolver maps solver keys to input files below Root.
type Resolver struct {
	Root string
}

// NewResolver returns a resolver rooted at root, or DefaultRoot when empty.
func NewResolver(root string) Resolver {
	if root == "" {
		root = DefaultRoot
	}
	return Resolver{Root: root}
}

// FileName picks the input file name for a part.
func FileName(part solver.Part, useTest bool) string {
	if !useTest {
		return ProductionFile
	}
	if part == solver.PartTwo {
		return TestPart2File
	}
	return TestPart1File
}

// DayDir is the directory holding the inputs of one solver.
func (r Resolver) DayDir(key solver.Key) string {
	return filepath.Join(r.root(), strconv.Itoa(key.Year), InputsDir, fmt.Sprintf("%02d", key.Day))
}

// Path builds the input path for key and part without touching the filesystem.
func (r Resolver) Path(key solver.Key, part solver.Part, useTest bool) Source {
	name := FileName(part, useTest)
	return Source{Path: filepath.Join(r.DayDir(key), name), File: name}
}

// Resolve builds the input path and checks that the file exists.
func (r Resolver) Resolve(key solver.Key, part solver.Part, useTest bool) (Source, error) {
	source := r.Path(key, part, useTest)
	if err := Check(source.Path); err != nil {
		return Source{}, err
	}
	return source, nil
}

// Check returns a NotFoundError unless path names an existing regular file.
func Check(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Path: path}
		}
		return fmt.Errorf("stat input %q: %w", path, err)
	}
	if info.IsDir() {
		return &NotFoundError{Path: path}
	}
	return nil
}

func (r Resolver) root() string {
	if r.Root == "" {
		return DefaultRoot
	}
	return r.Root
}
