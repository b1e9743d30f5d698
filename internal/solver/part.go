package solver

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidPart reports a part index other than 1 or 2.
var ErrInvalidPart = errors.New("part must be 1 or 2")

// Part selects one of the two operations of a solver.
type Part int

const (
	// PartOne runs Solver.Part1.
	PartOne Part = 1
	// PartTwo runs Solver.Part2.
	PartTwo Part = 2
)

// Parts lists both parts in execution order.
var Parts = []Part{PartOne, PartTwo}

// Valid reports whether p is 1 or 2.
func (p Part) Valid() bool {
	return p == PartOne || p == PartTwo
}

func (p Part) String() string {
	return fmt.Sprintf("part %d", int(p))
}

// ParsePart converts a user supplied number into a Part.
func ParsePart(value int) (Part, error) {
	part := Part(value)
	if !part.Valid() {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPart, value)
	}
	return part, nil
}

// Call invokes the operation p selects on s.
func (p Part) Call(ctx context.Context, s Solver) (string, error) {
	switch p {
	case PartOne:
		return s.Part1(ctx)
	case PartTwo:
		return s.Part2(ctx)
	default:
		return "", fmt.Errorf("%w: got %d", ErrInvalidPart, int(p))
	}
}
