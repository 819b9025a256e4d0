package integrators

import (
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

// EulerCromer is the semi-implicit Euler scheme: omega is updated first
// and theta advances with the new omega.
type EulerCromer struct{}

func NewEulerCromer() *EulerCromer {
	return &EulerCromer{}
}

func (e *EulerCromer) Step(s dynamo.State, p *dynamo.PhysicalParams, dt float64) dynamo.State {
	_, alpha := physics.DeriveState(s, p)
	omega := s.Omega + dt*alpha
	return dynamo.State{
		T:     s.T + dt,
		Theta: s.Theta + dt*omega,
		Omega: omega,
	}
}

func (e *EulerCromer) fixedStep() {}
