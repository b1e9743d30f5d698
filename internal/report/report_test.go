package report

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoc-runner/aoc/internal/runner"
	"github.com/aoc-runner/aoc/internal/solver"
)

func ok(part solver.Part, result string, elapsed time.Duration) runner.Outcome {
	return runner.Outcome{Part: part, Result: result, Elapsed: elapsed}
}

func failed(part solver.Part, reason string) runner.Outcome {
	return runner.Outcome{Part: part, Err: errors.New(reason)}
}

func TestTotalCountsSuccessfulOutcomesOnly(t *testing.T) {
	t.Parallel()

	aggregator := NewGroup(2024)
	aggregator.Record(2024, 1, ok(solver.PartOne, "a", 10500*time.Microsecond))
	aggregator.Record(2024, 2, failed(solver.PartOne, "boom"))
	aggregator.Record(2024, 3, ok(solver.PartOne, "b", 3200*time.Microsecond))

	got := aggregator.Finalize()
	require.Len(t, got.Rows, 3)
	assert.Equal(t, 13700*time.Microsecond, got.Total)
	assert.True(t, math.Abs(got.TotalMs()-13.7) < 1e-9, "total ms = %v", got.TotalMs())
	assert.Equal(t, 1, got.Failures())
}

func TestRecordPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	aggregator := NewGroup(2023)
	aggregator.Record(2023, 5, ok(solver.PartTwo, "x", time.Millisecond))
	aggregator.Record(2023, 5, ok(solver.PartOne, "y", time.Millisecond))
	aggregator.Record(2023, 1, failed(solver.PartOne, "bad"))
	aggregator.Record(2023, 5, ok(solver.PartTwo, "x", time.Millisecond))

	want := []Row{
		{Year: 2023, Day: 5, Part: 2, OK: true, Result: "x", Elapsed: time.Millisecond},
		{Year: 2023, Day: 5, Part: 1, OK: true, Result: "y", Elapsed: time.Millisecond},
		{Year: 2023, Day: 1, Part: 1, OK: false, Reason: "bad"},
		{Year: 2023, Day: 5, Part: 2, OK: true, Result: "x", Elapsed: time.Millisecond},
	}
	if diff := cmp.Diff(want, aggregator.Finalize().Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestFinalizeShapes(t *testing.T) {
	t.Parallel()

	single := NewSingle(solver.Key{Year: 2024, Day: 7})
	single.Record(2024, 7, ok(solver.PartOne, "1", time.Millisecond))
	report := single.Finalize()
	assert.Equal(t, ModeSingle, report.Mode)
	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 7, report.Day)

	group := NewGroup(2022).Finalize()
	assert.Equal(t, ModeGroup, group.Mode)
	assert.Equal(t, 2022, group.Year)
	assert.NotNil(t, group.Rows)
	assert.Empty(t, group.Rows)
	assert.Zero(t, group.Total)
}

func TestFinalizeIsASnapshot(t *testing.T) {
	t.Parallel()

	aggregator := NewGroup(2024)
	aggregator.Record(2024, 1, ok(solver.PartOne, "a", time.Millisecond))
	snapshot := aggregator.Finalize()
	aggregator.Record(2024, 2, ok(solver.PartOne, "b", time.Millisecond))

	assert.Len(t, snapshot.Rows, 1)
	assert.Equal(t, 2, aggregator.Len())
}

func TestGroupsSplitsConsecutiveSolvers(t *testing.T) {
	t.Parallel()

	aggregator := NewGroup(2024)
	aggregator.Record(2024, 1, ok(solver.PartOne, "a", time.Millisecond))
	aggregator.Record(2024, 1, ok(solver.PartTwo, "b", time.Millisecond))
	aggregator.Record(2024, 3, failed(solver.PartOne, "c"))

	groups := aggregator.Finalize().Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, 1, groups[0].Day)
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, 3, groups[1].Day)
	assert.Len(t, groups[1].Rows, 1)
}

func TestRowElapsedMsAbsentForFailures(t *testing.T) {
	t.Parallel()

	row := Row{OK: true, Elapsed: 250 * time.Microsecond}
	require.NotNil(t, row.ElapsedMs())
	assert.InDelta(t, 0.25, *row.ElapsedMs(), 1e-9)

	assert.Nil(t, Row{OK: false, Reason: "x"}.ElapsedMs())
}
