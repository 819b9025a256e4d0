package integrators

import (
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	// 5th minus embedded 4th order weights
	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 + 92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the embedded Dormand-Prince 5(4) pair. The 5th order solution
// is propagated; the last stage of an accepted step is reused as the
// first stage of the next one.
type RK45 struct {
	stepControl

	fsalValid bool
	fsalAt    dynamo.State
	fsalT     float64
	fsalW     float64

	pendT, pendW float64
}

func NewRK45() *RK45 {
	return &RK45{}
}

func (r *RK45) AdvanceTo(s dynamo.State, p *dynamo.PhysicalParams, tTarget float64, tol dynamo.Tolerances) (dynamo.State, float64) {
	attempt := func(x dynamo.State, h float64) (dynamo.State, float64) {
		return r.attempt(x, p, h, tol)
	}
	return r.advance(s, tTarget, tol, attempt, r.accepted)
}

func (r *RK45) attempt(x dynamo.State, p *dynamo.PhysicalParams, h float64, tol dynamo.Tolerances) (dynamo.State, float64) {
	t, th, w := x.T, x.Theta, x.Omega

	var k1t, k1w float64
	if r.fsalValid && r.fsalAt == x {
		k1t, k1w = r.fsalT, r.fsalW
	} else {
		k1t, k1w = physics.Derive(th, w, t, p)
		r.stats.Evaluations++
		// a rejected attempt retries from the same x
		r.fsalValid, r.fsalAt = true, x
		r.fsalT, r.fsalW = k1t, k1w
	}

	k2t, k2w := physics.Derive(th+h*b21*k1t, w+h*b21*k1w, t+a2*h, p)
	k3t, k3w := physics.Derive(
		th+h*(b31*k1t+b32*k2t),
		w+h*(b31*k1w+b32*k2w), t+a3*h, p)
	k4t, k4w := physics.Derive(
		th+h*(b41*k1t+b42*k2t+b43*k3t),
		w+h*(b41*k1w+b42*k2w+b43*k3w), t+a4*h, p)
	k5t, k5w := physics.Derive(
		th+h*(b51*k1t+b52*k2t+b53*k3t+b54*k4t),
		w+h*(b51*k1w+b52*k2w+b53*k3w+b54*k4w), t+a5*h, p)
	k6t, k6w := physics.Derive(
		th+h*(b61*k1t+b62*k2t+b63*k3t+b64*k4t+b65*k5t),
		w+h*(b61*k1w+b62*k2w+b63*k3w+b64*k4w+b65*k5w), t+h, p)

	next := dynamo.State{
		T:     t + h,
		Theta: th + h*(c1*k1t+c3*k3t+c4*k4t+c5*k5t+c6*k6t),
		Omega: w + h*(c1*k1w+c3*k3w+c4*k4w+c5*k5w+c6*k6w),
	}

	k7t, k7w := physics.Derive(next.Theta, next.Omega, next.T, p)
	r.stats.Evaluations += 6
	r.pendT, r.pendW = k7t, k7w

	errT := h * (dc1*k1t + dc3*k3t + dc4*k4t + dc5*k5t + dc6*k6t + dc7*k7t)
	errW := h * (dc1*k1w + dc3*k3w + dc4*k4w + dc5*k5w + dc6*k6w + dc7*k7w)

	return next, scaledError(errT, errW, next.Theta, next.Omega, x, tol)
}

func (r *RK45) accepted(s dynamo.State) {
	r.fsalValid = true
	r.fsalAt = s
	r.fsalT, r.fsalW = r.pendT, r.pendW
}

func (r *RK45) adaptiveStep() {}
