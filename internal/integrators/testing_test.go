package integrators

import (
	"math"

	"github.com/san-kum/poincare/internal/dynamo"
)

// chaoticParams is the classic driven pendulum set used across tests.
var chaoticParams = dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.2, OmegaD: 2.0 / 3.0}

func freePendulum() dynamo.PhysicalParams {
	return dynamo.PhysicalParams{G: 9.8, L: 1.0, OmegaD: 1.0}
}

func fineRK4(s dynamo.State, p *dynamo.PhysicalParams, tEnd float64, n int) dynamo.State {
	dt := (tEnd - s.T) / float64(n)
	r := NewRK4()
	for i := 0; i < n; i++ {
		s = r.Step(s, p, dt)
	}
	return s
}

func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
