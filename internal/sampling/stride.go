package sampling

import (
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/physics"
)

// Stride records one sample every k fixed steps.
type Stride struct {
	k       int
	counter int
	wrap    bool
}

// NewStride panics on k < 1; DeriveDtAndK never produces one.
func NewStride(k int, wrap bool) *Stride {
	if k < 1 {
		panic("sampling: stride must be positive")
	}
	return &Stride{k: k, wrap: wrap}
}

// ShouldRecord is called once after every step taken during sampling.
func (s *Stride) ShouldRecord() bool {
	s.counter++
	if s.counter == s.k {
		s.counter = 0
		return true
	}
	return false
}

func (s *Stride) OnSample(x dynamo.State) dynamo.SamplePoint {
	return toPoint(x, s.wrap)
}

func (s *Stride) Reset() {
	s.counter = 0
}

func (s *Stride) K() int { return s.k }

func toPoint(x dynamo.State, wrap bool) dynamo.SamplePoint {
	theta := x.Theta
	if wrap {
		theta = physics.WrapAnglePi(theta)
	}
	return dynamo.SamplePoint{Theta: theta, Omega: x.Omega}
}
