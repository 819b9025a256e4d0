// Package physics provides the driven, damped pendulum model.
//
// The equation of motion is
//
//	theta'' = -(g/l) sin(theta) - q theta' + f_drive sin(omega_d t)
//
// written as the first-order system returned by [Derive]. [WrapAnglePi]
// maps angles into (-π, π] for emitted section points only; integration
// always runs on the unwrapped angle.
//
// # Energy
//
// For the undriven, undamped pendulum [Energy] is conserved and is the
// usual way to check integrator drift:
//
//	e0 := physics.Energy(s0, &p)
//	drift := math.Abs(physics.Energy(s, &p) - e0)
package physics
