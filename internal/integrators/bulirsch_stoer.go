package integrators

import (
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

// bsSequence is the substep count of each extrapolation row.
var bsSequence = [...]int{2, 4, 6, 8, 10, 12}

const bsRows = len(bsSequence)

// BulirschStoer combines modified midpoint sweeps with Richardson
// extrapolation. Rows are added until the two most extrapolated entries
// of a row agree within tolerance, so the effective order varies per step.
type BulirschStoer struct {
	stepControl

	// table[i*bsRows+j] is row i, column j of the triangular tableau.
	table [bsRows * bsRows][2]float64
}

func NewBulirschStoer() *BulirschStoer {
	return &BulirschStoer{}
}

func (b *BulirschStoer) AdvanceTo(s dynamo.State, p *dynamo.PhysicalParams, tTarget float64, tol dynamo.Tolerances) (dynamo.State, float64) {
	attempt := func(x dynamo.State, h float64) (dynamo.State, float64) {
		return b.attempt(x, p, h, tol)
	}
	return b.advance(s, tTarget, tol, attempt, nil)
}

func (b *BulirschStoer) attempt(x dynamo.State, p *dynamo.PhysicalParams, h float64, tol dynamo.Tolerances) (dynamo.State, float64) {
	f0t, f0w := physics.Derive(x.Theta, x.Omega, x.T, p)
	b.stats.Evaluations++

	var best [2]float64
	errNorm := 0.0
	for i := 0; i < bsRows; i++ {
		th, w := b.midpoint(x, p, f0t, f0w, h, bsSequence[i])
		b.table[i*bsRows] = [2]float64{th, w}

		for k := 1; k <= i; k++ {
			ratio := float64(bsSequence[i]) / float64(bsSequence[i-k])
			denom := ratio*ratio - 1
			cur := b.table[i*bsRows+k-1]
			prev := b.table[(i-1)*bsRows+k-1]
			b.table[i*bsRows+k] = [2]float64{
				cur[0] + (cur[0]-prev[0])/denom,
				cur[1] + (cur[1]-prev[1])/denom,
			}
		}

		best = b.table[i*bsRows+i]
		if i == 0 {
			continue
		}
		alt := b.table[i*bsRows+i-1]
		errNorm = scaledError(best[0]-alt[0], best[1]-alt[1], best[0], best[1], x, tol)
		if errNorm <= 1 {
			break
		}
	}

	return dynamo.State{T: x.T + h, Theta: best[0], Omega: best[1]}, errNorm
}

// midpoint is the modified midpoint rule over n substeps of h/n, started
// with an explicit Euler half-step and closed with the trapezoidal
// endpoint correction. f0 is the derivative at x.
func (b *BulirschStoer) midpoint(x dynamo.State, p *dynamo.PhysicalParams, f0t, f0w, h float64, n int) (float64, float64) {
	hs := h / float64(n)

	z0t, z0w := x.Theta, x.Omega
	z1t, z1w := z0t+hs*f0t, z0w+hs*f0w

	for m := 1; m < n; m++ {
		dt, dw := physics.Derive(z1t, z1w, x.T+float64(m)*hs, p)
		z0t, z1t = z1t, z0t+2*hs*dt
		z0w, z1w = z1w, z0w+2*hs*dw
	}

	dt, dw := physics.Derive(z1t, z1w, x.T+h, p)
	b.stats.Evaluations += n

	return 0.5 * (z1t + z0t + hs*dt), 0.5 * (z1w + z0w + hs*dw)
}

func (b *BulirschStoer) adaptiveStep() {}
