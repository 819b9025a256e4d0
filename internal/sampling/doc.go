// Package sampling decides when a trajectory is recorded on the
// Poincaré section.
//
// [Stride] counts fixed steps and fires every k-th one. [TimeGrid]
// hands adaptive integrators the exact times t0 + (W+1+n)P at which the
// section is taken. Both turn the recorded [dynamo.State] into a
// [dynamo.SamplePoint], wrapping theta into (-π, π] when asked to.
package sampling
