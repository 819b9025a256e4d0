package physics

import (
	"math"

	"github.com/san-kum/poincare/internal/dynamo"
)

const twoPi = 2 * math.Pi

// Derive returns (dtheta/dt, domega/dt) at the given point.
func Derive(theta, omega, t float64, p *dynamo.PhysicalParams) (float64, float64) {
	alpha := -(p.G/p.L)*math.Sin(theta) - p.Q*omega + p.FDrive*math.Sin(p.OmegaD*t)
	return omega, alpha
}

// DeriveState is Derive applied to a State.
func DeriveState(s dynamo.State, p *dynamo.PhysicalParams) (float64, float64) {
	return Derive(s.Theta, s.Omega, s.T, p)
}

// WrapAnglePi maps theta into (-π, π]. An exact π stays π.
func WrapAnglePi(theta float64) float64 {
	if theta > -math.Pi && theta <= math.Pi {
		return theta
	}
	wrapped := math.Mod(theta, twoPi)
	if wrapped < 0 {
		wrapped += twoPi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if wrapped >= twoPi {
		wrapped -= twoPi
	}
	if wrapped <= math.Pi {
		return wrapped
	}
	return wrapped - twoPi
}

// DrivePeriod returns 2π/omegaD.
func DrivePeriod(omegaD float64) float64 {
	return twoPi / omegaD
}

// Energy is the mechanical energy per unit m·l²: ½ω² - (g/l)cos(θ).
func Energy(s dynamo.State, p *dynamo.PhysicalParams) float64 {
	return 0.5*s.Omega*s.Omega - (p.G/p.L)*math.Cos(s.Theta)
}
