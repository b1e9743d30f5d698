// Package solve ties solver lookup, input resolution, execution and
// aggregation together for the two run modes: one solver, or a whole year.
package solve

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/report"
	"github.com/aoc-runner/aoc/internal/runner"
	"github.com/aoc-runner/aoc/internal/solver"
)

// Locator finds registered solvers.
type Locator interface {
	FindOne(year, day int) (solver.Handle, error)
	FindAll(year int) []solver.Handle
}

// Executor runs one solver part.
type Executor interface {
	Run(ctx context.Context, handle solver.Handle, inputPath string, part solver.Part) runner.Outcome
}

// InputResolver maps a solver part to its input file.
type InputResolver interface {
	Resolve(key solver.Key, part solver.Part, useTest bool) (input.Source, error)
}

// Request is a validated solve invocation. Day and Part are optional.
type Request struct {
	Year    int
	Day     *int
	UseTest bool
	Part    *solver.Part
}

// Parts returns the parts to run, in order.
func (r Request) Parts() []solver.Part {
	if r.Part != nil {
		return []solver.Part{*r.Part}
	}
	return solver.Parts
}

// Service runs solve requests.
type Service struct {
	locator  Locator
	inputs   InputResolver
	executor Executor
	logger   *log.Logger
}

// NewService validates collaborators and builds a Service. A nil logger
// discards log output.
func NewService(locator Locator, inputs InputResolver, executor Executor, logger *log.Logger) (*Service, error) {
	if locator == nil {
		return nil, errors.New("solver locator is required")
	}
	if inputs == nil {
		return nil, errors.New("input resolver is required")
	}
	if executor == nil {
		return nil, errors.New("executor is required")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{locator: locator, inputs: inputs, executor: executor, logger: logger}, nil
}

// Run dispatches to single-solver mode when a day is given and group mode otherwise.
func (s *Service) Run(ctx context.Context, req Request) (report.Report, error) {
	if s == nil {
		return report.Report{}, errors.New("solve service is nil")
	}
	if req.Part != nil && !req.Part.Valid() {
		return report.Report{}, fmt.Errorf("%w: got %d", solver.ErrInvalidPart, int(*req.Part))
	}
	if req.Day != nil {
		return s.RunOne(ctx, req.Year, *req.Day, req.UseTest, req.Parts())
	}
	return s.RunYear(ctx, req.Year, req.UseTest, req.Parts())
}

// RunOne runs the selected parts of a single solver. A missing solver or a
// missing input aborts the run; solver failures are recorded.
func (s *Service) RunOne(ctx context.Context, year, day int, useTest bool, parts []solver.Part) (report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	handle, err := s.locator.FindOne(year, day)
	if err != nil {
		return report.Report{}, err
	}

	aggregator := report.NewSingle(handle.Key)
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return aggregator.Finalize(), err
		}
		source, err := s.inputs.Resolve(handle.Key, part, useTest)
		if err != nil {
			return aggregator.Finalize(), fmt.Errorf("%s %s: %w", handle.Key, part, err)
		}
		s.record(ctx, aggregator, handle, source, part)
	}
	return aggregator.Finalize(), nil
}

// RunYear runs every solver registered for year in ascending day order.
// Pairings without an input file are skipped; failures are recorded and the
// loop moves on.
func (s *Service) RunYear(ctx context.Context, year int, useTest bool, parts []solver.Part) (report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	aggregator := report.NewGroup(year)
	handles := s.locator.FindAll(year)
	if len(handles) == 0 {
		s.logger.With("year", year).Warn("no solvers registered")
		return aggregator.Finalize(), nil
	}

	for _, handle := range handles {
		for _, part := range parts {
			if err := ctx.Err(); err != nil {
				return aggregator.Finalize(), err
			}
			source, err := s.inputs.Resolve(handle.Key, part, useTest)
			if err != nil {
				if errors.Is(err, input.ErrInputNotFound) {
					s.logger.With("year", year, "day", handle.Key.Day, "part", int(part)).
						Debug("input missing; skipping", "err", err)
					continue
				}
				aggregator.Record(year, handle.Key.Day, runner.Outcome{Key: handle.Key, Part: part, Err: err})
				continue
			}
			s.record(ctx, aggregator, handle, source, part)
		}
	}
	return aggregator.Finalize(), nil
}

func (s *Service) record(
	ctx context.Context,
	aggregator *report.Aggregator,
	handle solver.Handle,
	source input.Source,
	part solver.Part,
) {
	outcome := s.executor.Run(ctx, handle, source.Path, part)
	aggregator.Record(handle.Key.Year, handle.Key.Day, outcome)

	entry := s.logger.With(
		"year", handle.Key.Year,
		"day", handle.Key.Day,
		"part", int(part),
		"input", source.File,
	)
	if outcome.OK() {
		entry.Info("part solved", "elapsed_ms", outcome.ElapsedMs())
		return
	}
	entry.Error("part failed", "reason", outcome.Reason())
}
