package integrators

import (
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(s dynamo.State, p *dynamo.PhysicalParams, dt float64) dynamo.State {
	half := dt * 0.5

	k1t, k1w := physics.Derive(s.Theta, s.Omega, s.T, p)
	k2t, k2w := physics.Derive(s.Theta+half*k1t, s.Omega+half*k1w, s.T+half, p)
	k3t, k3w := physics.Derive(s.Theta+half*k2t, s.Omega+half*k2w, s.T+half, p)
	k4t, k4w := physics.Derive(s.Theta+dt*k3t, s.Omega+dt*k3w, s.T+dt, p)

	dt6 := dt / 6.0
	return dynamo.State{
		T:     s.T + dt,
		Theta: s.Theta + dt6*(k1t+2*k2t+2*k3t+k4t),
		Omega: s.Omega + dt6*(k1w+2*k2w+2*k3w+k4w),
	}
}

func (r *RK4) fixedStep() {}
