package sim

import (
	"time"

	"github.com/san-kum/poincare/internal/dynamo"
)

// Phase is the stage a run is in.
type Phase string

const (
	PhaseWarmup   Phase = "warmup"
	PhaseSampling Phase = "sampling"
)

// Result is the ordered section of one run together with the step
// controls that produced it. Dt and K are set on the fixed-step path,
// Tolerances on the adaptive path.
type Result struct {
	Points     []dynamo.SamplePoint `json:"points"`
	Method     dynamo.Method        `json:"method"`
	Period     float64              `json:"period"`
	Dt         float64              `json:"dt,omitempty"`
	K          int                  `json:"k,omitempty"`
	Tolerances dynamo.Tolerances    `json:"tolerances"`
	Stats      dynamo.Stats         `json:"stats"`
	Final      dynamo.State         `json:"final"`
	Elapsed    time.Duration        `json:"elapsed"`
}

// ProgressFunc is called once per completed drive period. Adaptive
// runs cross the warmup in a single advance and report it once, with
// done == total.
type ProgressFunc func(phase Phase, done, total int)

type options struct {
	observer dynamo.StepObserver
	progress ProgressFunc
}

type Option func(*options)

// WithObserver reports adaptive steps accepted at the minimum step size.
func WithObserver(obs dynamo.StepObserver) Option {
	return func(o *options) { o.observer = obs }
}

func WithProgress(fn ProgressFunc) Option {
	return func(o *options) { o.progress = fn }
}

func (o *options) report(phase Phase, done, total int) {
	if o.progress != nil {
		o.progress(phase, done, total)
	}
}
