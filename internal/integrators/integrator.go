// Package integrators advances the pendulum state in time.
//
// Two closed families are provided. Fixed-step schemes ([EulerCromer],
// [RK4]) implement [Stepper] and take one deterministic step of a given
// size. Adaptive schemes ([RK45], [BulirschStoer]) implement
// [AdaptiveStepper] and advance to an exact target time under an error
// tolerance, choosing their own step sizes.
//
// [DeriveDtAndK] and [ResolveTolerances] turn physical and numerical
// parameters into the step controls each family needs.
package integrators

import "github.com/san-kum/poincare/internal/dynamo"

// Stepper takes one fixed step. Implementations are EulerCromer and RK4.
type Stepper interface {
	Step(s dynamo.State, p *dynamo.PhysicalParams, dt float64) dynamo.State
	fixedStep()
}

// AdaptiveStepper advances to tTarget exactly and returns the step size
// to seed the next call with. Implementations are RK45 and BulirschStoer.
type AdaptiveStepper interface {
	AdvanceTo(s dynamo.State, p *dynamo.PhysicalParams, tTarget float64, tol dynamo.Tolerances) (dynamo.State, float64)
	SetObserver(obs dynamo.StepObserver)
	Stats() dynamo.Stats
	adaptiveStep()
}
