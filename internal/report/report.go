// Package report collects part outcomes into an ordered run report.
package report

import (
	"time"

	"github.com/aoc-runner/aoc/internal/runner"
	"github.com/aoc-runner/aoc/internal/solver"
)

// Mode distinguishes a single solver run from a whole-year run.
type Mode string

const (
	// ModeSingle covers one solver and up to two parts.
	ModeSingle Mode = "single"
	// ModeGroup covers every solver of a year.
	ModeGroup Mode = "group"
)

// Row is one recorded part outcome.
type Row struct {
	Year    int           `json:"year" yaml:"year"`
	Day     int           `json:"day" yaml:"day"`
	Part    int           `json:"part" yaml:"part"`
	OK      bool          `json:"ok" yaml:"ok"`
	Result  string        `json:"result,omitempty" yaml:"result,omitempty"`
	Reason  string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	Elapsed time.Duration `json:"-" yaml:"-"`
}

// ElapsedMs returns elapsed time in fractional milliseconds, or nil for failures.
func (r Row) ElapsedMs() *float64 {
	if !r.OK {
		return nil
	}
	ms := float64(r.Elapsed) / float64(time.Millisecond)
	return &ms
}

// SolverRows groups the rows of one solver.
type SolverRows struct {
	Year int
	Day  int
	Rows []Row
}

// Report is the finalized, ordered result of a run.
type Report struct {
	Mode  Mode
	Year  int
	Day   int
	Rows  []Row
	Total time.Duration
}

// TotalMs is the summed elapsed time of successful rows in fractional milliseconds.
func (r Report) TotalMs() float64 {
	return float64(r.Total) / float64(time.Millisecond)
}

// Failures counts the failed rows.
func (r Report) Failures() int {
	count := 0
	for _, row := range r.Rows {
		if !row.OK {
			count++
		}
	}
	return count
}

// Groups splits rows into consecutive per-solver groups, preserving order.
func (r Report) Groups() []SolverRows {
	groups := make([]SolverRows, 0)
	for _, row := range r.Rows {
		last := len(groups) - 1
		if last >= 0 && groups[last].Year == row.Year && groups[last].Day == row.Day {
			groups[last].Rows = append(groups[last].Rows, row)
			continue
		}
		groups = append(groups, SolverRows{Year: row.Year, Day: row.Day, Rows: []Row{row}})
	}
	return groups
}

// Aggregator appends outcomes in the order they are recorded.
type Aggregator struct {
	mode  Mode
	key   solver.Key
	rows  []Row
	total time.Duration
}

// NewSingle starts a report for one solver.
func NewSingle(key solver.Key) *Aggregator {
	return &Aggregator{mode: ModeSingle, key: key, rows: make([]Row, 0, len(solver.Parts))}
}

// NewGroup starts a report for every solver of year.
func NewGroup(year int) *Aggregator {
	return &Aggregator{mode: ModeGroup, key: solver.Key{Year: year}, rows: make([]Row, 0)}
}

// Record appends one outcome. Failures are kept and add nothing to the total.
func (a *Aggregator) Record(year, day int, outcome runner.Outcome) {
	if a == nil {
		return
	}
	row := Row{
		Year: year,
		Day:  day,
		Part: int(outcome.Part),
		OK:   outcome.OK(),
	}
	if row.OK {
		row.Result = outcome.Result
		row.Elapsed = outcome.Elapsed
		a.total += outcome.Elapsed
	} else {
		row.Reason = outcome.Reason()
	}
	a.rows = append(a.rows, row)
}

// Len reports how many outcomes have been recorded.
func (a *Aggregator) Len() int {
	if a == nil {
		return 0
	}
	return len(a.rows)
}

// Finalize returns the report. The aggregator may keep recording afterwards
// without affecting the returned value.
func (a *Aggregator) Finalize() Report {
	if a == nil {
		return Report{Rows: []Row{}}
	}
	rows := make([]Row, len(a.rows))
	copy(rows, a.rows)
	return Report{
		Mode:  a.mode,
		Year:  a.key.Year,
		Day:   a.key.Day,
		Rows:  rows,
		Total: a.total,
	}
}
