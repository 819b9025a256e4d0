package dynamo

import "errors"

// Domain errors for run operations.
var (
	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownMethod indicates an integration method name that is not recognised.
	ErrUnknownMethod = errors.New("dynamo: unknown integration method")

	// ErrMethodMismatch indicates a fixed-step builder was asked for an
	// adaptive method or the other way round.
	ErrMethodMismatch = errors.New("dynamo: integration method used with the wrong stepper family")

	// ErrCanceled indicates the run was interrupted.
	ErrCanceled = errors.New("dynamo: run canceled by context")
)

// RunError wraps an error with the position in the run where it occurred.
type RunError struct {
	Phase   string
	Period  int
	State   State
	Wrapped error
}

func (e *RunError) Error() string {
	return e.Phase + ": " + e.Wrapped.Error()
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
