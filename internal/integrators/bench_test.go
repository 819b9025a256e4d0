package integrators

import (
	"testing"

	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

func BenchmarkEulerCromer(b *testing.B) {
	integrator := NewEulerCromer()
	p := chaoticParams
	x := dynamo.State{Theta: 0.2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(x, &p, 0.01)
	}
}

func BenchmarkRK4(b *testing.B) {
	integrator := NewRK4()
	p := chaoticParams
	x := dynamo.State{Theta: 0.2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integrator.Step(x, &p, 0.01)
	}
}

func BenchmarkRK45Period(b *testing.B) {
	p := chaoticParams
	period := physics.DrivePeriod(p.OmegaD)
	tol := ResolveTolerances(&p, &dynamo.IntegratorParams{Method: dynamo.RK45})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewRK45().AdvanceTo(dynamo.State{Theta: 0.2}, &p, period, tol)
	}
}

func BenchmarkBulirschStoerPeriod(b *testing.B) {
	p := chaoticParams
	period := physics.DrivePeriod(p.OmegaD)
	tol := ResolveTolerances(&p, &dynamo.IntegratorParams{Method: dynamo.BulirschStoer})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewBulirschStoer().AdvanceTo(dynamo.State{Theta: 0.2}, &p, period, tol)
	}
}
