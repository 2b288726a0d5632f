package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for propagation. The three fatal conditions are
// [ErrSingular], [ErrConvergence] and [ErrInvalidConfig]; none are retried.
var (
	// ErrInvalidConfig indicates a precondition failure (non-positive mass,
	// zero step size, zero step count, unknown scheme) rejected before
	// propagation begins.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrSingular indicates two bodies coincide during force evaluation.
	ErrSingular = errors.New("dynamo: singular configuration")

	// ErrConvergence indicates an implicit scheme's fixed-point iteration
	// failed to meet tolerance within its iteration budget.
	ErrConvergence = errors.New("dynamo: fixed-point iteration did not converge")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SingularError reports the pair of coincident bodies. It unwraps to
// [ErrSingular].
type SingularError struct {
	I, J int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("dynamo: singular configuration (bodies %d and %d coincide)", e.I, e.J)
}

func (e *SingularError) Unwrap() error { return ErrSingular }

// ConvergenceError reports the last residual of a failed fixed-point
// iteration. It unwraps to [ErrConvergence].
type ConvergenceError struct {
	Iterations int
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("dynamo: fixed-point iteration did not converge after %d iterations (residual %.3e)", e.Iterations, e.Residual)
}

func (e *ConvergenceError) Unwrap() error { return ErrConvergence }

// StepError wraps a fatal step failure with the step index and time at which
// it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
