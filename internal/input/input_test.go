package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aoc-runner/aoc/internal/solver"
)

func TestPathFollowsDirectoryConvention(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("")
	key := solver.Key{Year: 2024, Day: 3}

	tests := []struct {
		name    string
		part    solver.Part
		useTest bool
		want    string
	}{
		{name: "production part 1", part: solver.PartOne, useTest: false, want: "Solutions/2024/Inputs/03/Input.txt"},
		{name: "production part 2", part: solver.PartTwo, useTest: false, want: "Solutions/2024/Inputs/03/Input.txt"},
		{name: "test part 1", part: solver.PartOne, useTest: true, want: "Solutions/2024/Inputs/03/TestInputPart1.txt"},
		{name: "test part 2", part: solver.PartTwo, useTest: true, want: "Solutions/2024/Inputs/03/TestInputPart2.txt"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := resolver.Path(key, tc.part, tc.useTest)
			if got.Path != filepath.FromSlash(tc.want) {
				t.Fatalf("Path() = %q, want %q", got.Path, tc.want)
			}
			if got.File != filepath.Base(tc.want) {
				t.Fatalf("File = %q, want %q", got.File, filepath.Base(tc.want))
			}
		})
	}
}

func TestPathPadsDayToTwoDigits(t *testing.T) {
	t.Parallel()

	resolver := NewResolver("puzzles")
	got := resolver.Path(solver.Key{Year: 2015, Day: 25}, solver.PartOne, false).Path
	want := filepath.Join("puzzles", "2015", "Inputs", "25", "Input.txt")
	if got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}
}

func TestResolveReportsMissingFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	resolver := NewResolver(root)
	key := solver.Key{Year: 2024, Day: 1}

	_, err := resolver.Resolve(key, solver.PartOne, true)
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrInputNotFound", err)
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if filepath.Base(notFound.Path) != TestPart1File {
		t.Fatalf("missing path = %q, want %s", notFound.Path, TestPart1File)
	}

	dir := resolver.DayDir(key)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, TestPart1File), []byte("1\n"), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	source, err := resolver.Resolve(key, solver.PartOne, true)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if source.Path != filepath.Join(dir, TestPart1File) {
		t.Fatalf("source path = %q", source.Path)
	}

	if _, err := resolver.Resolve(key, solver.PartTwo, true); !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("part 2 test input should be missing, got %v", err)
	}
}

func TestCheckRejectsDirectories(t *testing.T) {
	t.Parallel()

	if err := Check(t.TempDir()); !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Check(dir) = %v, want ErrInputNotFound", err)
	}
}
