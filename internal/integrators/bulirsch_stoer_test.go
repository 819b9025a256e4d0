package integrators

import (
	"testing"

	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

func TestBulirschStoerMatchesRK45AndRK4(t *testing.T) {
	p := chaoticParams
	period := physics.DrivePeriod(p.OmegaD)
	x0 := dynamo.State{Theta: 0.2}
	tol := tightTolerances(&p)

	bs, _ := NewBulirschStoer().AdvanceTo(x0, &p, period, tol)
	rk, _ := NewRK45().AdvanceTo(x0, &p, period, tol)
	ref := fineRK4(x0, &p, period, 20000)

	if bs.T != period {
		t.Errorf("expected t exactly %.17g, got %.17g", period, bs.T)
	}
	if !closeTo(bs.Theta, rk.Theta, 1e-6) || !closeTo(bs.Omega, rk.Omega, 1e-6) {
		t.Errorf("BS [%.9f, %.9f] vs RK45 [%.9f, %.9f]", bs.Theta, bs.Omega, rk.Theta, rk.Omega)
	}
	if !closeTo(bs.Theta, ref.Theta, 1e-6) || !closeTo(bs.Omega, ref.Omega, 1e-6) {
		t.Errorf("BS [%.9f, %.9f] vs RK4 [%.9f, %.9f]", bs.Theta, bs.Omega, ref.Theta, ref.Omega)
	}
}

func TestBulirschStoerTakesLargeSteps(t *testing.T) {
	p := chaoticParams
	period := physics.DrivePeriod(p.OmegaD)
	tol := tightTolerances(&p)

	bs := NewBulirschStoer()
	bs.AdvanceTo(dynamo.State{Theta: 0.2}, &p, period, tol)
	rk := NewRK45()
	rk.AdvanceTo(dynamo.State{Theta: 0.2}, &p, period, tol)

	if bs.Stats().Accepted >= rk.Stats().Accepted {
		t.Errorf("expected fewer BS steps than RK45 at tight tolerance: %d vs %d",
			bs.Stats().Accepted, rk.Stats().Accepted)
	}
}

func TestBulirschStoerMidpointExactForLinearDrift(t *testing.T) {
	// with g = q = f = 0 the solution is theta = theta0 + omega0 t
	p := dynamo.PhysicalParams{G: 0, L: 1, OmegaD: 1}
	bs := NewBulirschStoer()

	th, w := bs.midpoint(dynamo.State{Theta: 1, Omega: 0.5}, &p, 0.5, 0, 2.0, 4)
	if !closeTo(th, 2.0, 1e-14) || !closeTo(w, 0.5, 1e-14) {
		t.Errorf("midpoint = (%.15f, %.15f), want (2, 0.5)", th, w)
	}
}
