package integrators

import (
	"fmt"

	"github.com/san-kum/poincare/internal/dynamo"
)

var (
	fixedSteppers = map[dynamo.Method]func() Stepper{
		dynamo.EulerCromer: func() Stepper { return NewEulerCromer() },
		dynamo.RK4:         func() Stepper { return NewRK4() },
	}
	adaptiveSteppers = map[dynamo.Method]func() AdaptiveStepper{
		dynamo.RK45:          func() AdaptiveStepper { return NewRK45() },
		dynamo.BulirschStoer: func() AdaptiveStepper { return NewBulirschStoer() },
	}
)

// NewStepper builds a fresh fixed-step integrator for m.
func NewStepper(m dynamo.Method) (Stepper, error) {
	fn, ok := fixedSteppers[m]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a fixed-step method", dynamo.ErrMethodMismatch, m)
	}
	return fn(), nil
}

// NewAdaptiveStepper builds a fresh adaptive integrator for m.
func NewAdaptiveStepper(m dynamo.Method) (AdaptiveStepper, error) {
	fn, ok := adaptiveSteppers[m]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an adaptive method", dynamo.ErrMethodMismatch, m)
	}
	return fn(), nil
}
