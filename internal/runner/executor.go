// Package runner drives one solver through setup and a single part, timing
// the part and turning every solver error into data.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aoc-runner/aoc/internal/input"
	"github.com/aoc-runner/aoc/internal/solver"
)

const tracerName = "aoc/runner"

// Option configures an Executor.
type Option func(*Executor)

// WithClock replaces the clock used to time parts. The default is time.Now,
// whose readings carry the monotonic clock.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) {
		if now != nil {
			e.now = now
		}
	}
}

// Executor runs solver parts one at a time.
type Executor struct {
	now func() time.Time
}

// NewExecutor builds an executor with optional configuration.
func NewExecutor(options ...Option) *Executor {
	executor := &Executor{now: time.Now}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}
	return executor
}

// Run instantiates a fresh solver from handle, sets it up against inputPath
// and runs part. Elapsed time covers the part call only. Errors and panics
// from the solver are captured in the returned Outcome.
func (e *Executor) Run(ctx context.Context, handle solver.Handle, inputPath string, part solver.Part) Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if e == nil {
		e = NewExecutor()
	}

	ctx, span := otel.Tracer(tracerName).Start(
		ctx,
		"solver.part",
		trace.WithAttributes(
			attribute.Int("year", handle.Key.Year),
			attribute.Int("day", handle.Key.Day),
			attribute.Int("part", int(part)),
			attribute.String("input", inputPath),
		),
	)
	defer span.End()

	outcome := e.run(ctx, handle, inputPath, part)

	span.SetAttributes(attribute.Float64("elapsed_ms", outcome.ElapsedMs()))
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, outcome.Reason())
	} else {
		span.SetStatus(codes.Ok, "part completed")
	}
	return outcome
}

func (e *Executor) run(ctx context.Context, handle solver.Handle, inputPath string, part solver.Part) Outcome {
	outcome := Outcome{Key: handle.Key, Part: part}

	if !part.Valid() {
		outcome.Err = fmt.Errorf("%w: got %d", solver.ErrInvalidPart, int(part))
		return outcome
	}

	instance, err := safeNew(handle)
	if err != nil {
		outcome.Err = &RunError{Kind: ErrSetupFailed, Key: handle.Key, Part: part, Err: err}
		return outcome
	}

	if err := input.Check(inputPath); err != nil {
		outcome.Err = err
		return outcome
	}

	if err := safeSetup(ctx, instance, inputPath); err != nil {
		outcome.Err = &RunError{Kind: ErrSetupFailed, Key: handle.Key, Part: part, Err: err}
		return outcome
	}

	started := e.now()
	result, err := safeCall(ctx, instance, part)
	outcome.Elapsed = e.now().Sub(started)

	if err != nil {
		outcome.Elapsed = 0
		outcome.Err = &RunError{Kind: ErrOperationFailed, Key: handle.Key, Part: part, Err: err}
		return outcome
	}
	outcome.Result = result
	return outcome
}

func safeNew(handle solver.Handle) (instance solver.Solver, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			instance = nil
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()
	return handle.New()
}

func safeSetup(ctx context.Context, instance solver.Solver, inputPath string) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()
	return instance.Setup(ctx, inputPath)
}

func safeCall(ctx context.Context, instance solver.Solver, part solver.Part) (result string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = ""
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()
	return part.Call(ctx, instance)
}
