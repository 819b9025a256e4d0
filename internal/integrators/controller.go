package integrators

import (
	"math"

	"github.com/san-kum/poincare/internal/dynamo"
)

const (
	safety     = 0.9
	minScale   = 0.2
	maxScale   = 5.0
	errTiny    = 1e-12
	errorPower = -1.0 / 5.0
)

// attemptFunc tries a single step of size h from s and returns the
// candidate state together with its scaled error norm.
type attemptFunc func(s dynamo.State, h float64) (dynamo.State, float64)

// stepControl is the accept/reject loop shared by the adaptive schemes.
type stepControl struct {
	observer dynamo.StepObserver
	stats    dynamo.Stats
}

func (c *stepControl) SetObserver(obs dynamo.StepObserver) { c.observer = obs }
func (c *stepControl) Stats() dynamo.Stats                 { return c.stats }

// advance drives attempt until s.T == tTarget. Steps never exceed
// tol.DtMax, never overshoot the target, and a trial at or below
// tol.DtMin is accepted whatever its error.
func (c *stepControl) advance(s dynamo.State, tTarget float64, tol dynamo.Tolerances, attempt attemptFunc, accepted func(dynamo.State)) (dynamo.State, float64) {
	h := clamp(tol.DtInit, tol.DtMin, tol.DtMax)
	eps := timeEpsilon(tTarget)
	lastH := h

	for {
		remaining := tTarget - s.T
		if remaining <= eps {
			s.T = tTarget
			return s, lastH
		}

		trial, capped := h, false
		if trial >= remaining {
			trial, capped = remaining, true
		}

		next, errNorm := attempt(s, trial)
		atFloor := trial <= tol.DtMin

		if !(errNorm <= 1) && !atFloor {
			c.stats.Rejected++
			h = clamp(trial*shrinkFactor(errNorm), tol.DtMin, tol.DtMax)
			continue
		}

		if !(errNorm <= 1) {
			c.stats.FloorAccepts++
			if c.observer != nil {
				c.observer.OnFloorAccept(s.T, trial, errNorm)
			}
		}
		c.stats.Accepted++

		if capped {
			// report the controller's h, not the truncated landing
			// step, so a short final step does not shrink the seed
			next.T = tTarget
			if accepted != nil {
				accepted(next)
			}
			return next, h
		}

		s = next
		if accepted != nil {
			accepted(s)
		}
		lastH = trial
		h = clamp(trial*growthFactor(errNorm), tol.DtMin, tol.DtMax)
	}
}

// scaledError is the mixed absolute/relative error norm of a step: the
// larger of the two component errors, each divided by
// atol + rtol*max(|new|, |old|).
func scaledError(dTheta, dOmega, newTheta, newOmega float64, old dynamo.State, tol dynamo.Tolerances) float64 {
	et := math.Abs(dTheta) / (tol.Atol + tol.Rtol*math.Max(math.Abs(newTheta), math.Abs(old.Theta)))
	ew := math.Abs(dOmega) / (tol.Atol + tol.Rtol*math.Max(math.Abs(newOmega), math.Abs(old.Omega)))
	return math.Max(et, ew)
}

func growthFactor(errNorm float64) float64 {
	if errNorm <= errTiny {
		return maxScale
	}
	return clamp(safety*math.Pow(errNorm, errorPower), minScale, maxScale)
}

func shrinkFactor(errNorm float64) float64 {
	if math.IsNaN(errNorm) || math.IsInf(errNorm, 1) {
		return minScale
	}
	return clamp(safety*math.Pow(errNorm, errorPower), minScale, 1.0)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func timeEpsilon(t float64) float64 {
	return 1e-12 * math.Max(1, math.Abs(t))
}
