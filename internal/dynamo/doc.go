// Package dynamo provides the core value types shared by the Poincaré
// section engine.
//
// The package defines the data every other layer passes around:
//
//   - [State]: time, angle and angular velocity of the pendulum
//   - [PhysicalParams]: gravity, length, damping and drive of the model
//   - [Method]: the closed set of integration methods
//   - [IntegratorParams] and [Tolerances]: numerical controls
//   - [SamplePoint]: one emitted (theta, omega) section coordinate
//
// # Example
//
//	m, _ := dynamo.ParseMethod("rk45")
//	if m.IsAdaptive() {
//	    // time-grid sampling path
//	}
//
// # Thread Safety
//
// All types are plain values. Steppers and samplers built on top of them
// hold per-run state and must not be shared between concurrent runs.
package dynamo
