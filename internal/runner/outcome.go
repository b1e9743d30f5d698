package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/aoc-runner/aoc/internal/solver"
)

var (
	// ErrSetupFailed marks errors raised by a solver while preparing its input.
	ErrSetupFailed = errors.New("setup failed")
	// ErrOperationFailed marks errors raised by a solver part.
	ErrOperationFailed = errors.New("operation failed")
)

// RunError attributes a solver failure to a key, part and stage.
type RunError struct {
	Kind error
	Key  solver.Key
	Part solver.Part
	Err  error
}

func (e *RunError) Error() string {
	if e == nil {
		return ""
	}
	kind := "run failed"
	if e.Kind != nil {
		kind = e.Kind.Error()
	}
	if e.Err == nil {
		return kind
	}
	return fmt.Sprintf("%s: %v", kind, e.Err)
}

// Unwrap exposes both the failure kind and the solver's own error.
func (e *RunError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{e.Kind, e.Err}
}

// Outcome is the result of one part invocation.
type Outcome struct {
	Key     solver.Key
	Part    solver.Part
	Result  string
	Elapsed time.Duration
	Err     error
}

// OK reports whether the part produced a result.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Reason is the display text for a failed outcome.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// ElapsedMs is the elapsed time in fractional milliseconds.
func (o Outcome) ElapsedMs() float64 {
	return float64(o.Elapsed) / float64(time.Millisecond)
}
