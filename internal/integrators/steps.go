package integrators

import (
	"math"

	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

const (
	// baseline sub-step sizes used when no dt is given
	baseDtRK4   = 0.04
	baseDtEuler = 0.02

	// strongly driven or weakly damped runs get finer steps
	chaoticDrive   = 1.0
	chaoticDamping = 0.3
	refineRK4      = 1.5
	refineEuler    = 2.0

	// largest k SnapEven will return; keeps the int conversion exact
	maxSubsteps = 1 << 52
)

// SnapEven rounds x to the nearest even integer, breaking ties toward
// the larger one, and never returns less than 2.
func SnapEven(x float64) int {
	if math.IsNaN(x) || x < 2 {
		return 2
	}
	if x > maxSubsteps {
		return maxSubsteps
	}
	return int(2 * math.Round(x/2))
}

// DeriveDtAndK returns the fixed step size dt and the even number k of
// steps per drive period, with k*dt equal to the period.
func DeriveDtAndK(p *dynamo.PhysicalParams, ip *dynamo.IntegratorParams) (float64, int) {
	period := physics.DrivePeriod(p.OmegaD)

	if ip.DtUser > 0 {
		k := math.Max(1, math.Round(period/ip.DtUser))
		n := SnapEven(k)
		return period / float64(n), n
	}

	base, refine := baseDtRK4, refineRK4
	if ip.Method == dynamo.EulerCromer {
		base, refine = baseDtEuler, refineEuler
	}

	k0 := math.Max(1, math.Round(period/base))
	if p.FDrive >= chaoticDrive || p.Q <= chaoticDamping {
		k0 *= refine
	}

	n := SnapEven(k0)
	return period / float64(n), n
}

// StepsForWarmup is the number of fixed steps discarded before sampling.
func StepsForWarmup(ip *dynamo.IntegratorParams, k int) int {
	return saturatingMul(ip.WarmupPeriods, k)
}

// StepsForSampling is the number of fixed steps taken while sampling.
func StepsForSampling(ip *dynamo.IntegratorParams, k int) int {
	return saturatingMul(ip.SamplePeriods, k)
}

func saturatingMul(periods, k int) int {
	if periods <= 0 || k <= 0 {
		return 0
	}
	if periods > math.MaxInt/k {
		return math.MaxInt
	}
	return periods * k
}

// ResolveTolerances fills absent or non-positive adaptive controls with
// defaults derived from the drive period P: dt_init = P/400,
// dt_min = P/20000, dt_max = P/20, rtol = 1e-8, atol = 1e-10.
// dt_init is clamped into [dt_min, dt_max].
func ResolveTolerances(p *dynamo.PhysicalParams, ip *dynamo.IntegratorParams) dynamo.Tolerances {
	period := physics.DrivePeriod(p.OmegaD)

	tol := dynamo.Tolerances{
		Rtol:   positiveOr(ip.Rtol, 1e-8),
		Atol:   positiveOr(ip.Atol, 1e-10),
		DtInit: positiveOr(ip.DtInit, period/400),
		DtMin:  positiveOr(ip.DtMin, period/20000),
		DtMax:  positiveOr(ip.DtMax, period/20),
	}
	tol.DtInit = clamp(tol.DtInit, tol.DtMin, tol.DtMax)
	return tol
}

func positiveOr(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
