package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates a NaN or Inf component after a step.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates an initial state whose length differs
	// from the dynamics' StateDim.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and dynamics")

	ErrInvalidConfig = errors.New("sim: invalid config")
)

// StepError wraps a failure with the step at which it happened and the
// last good state.
type StepError struct {
	Step  int
	Time  float64
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
