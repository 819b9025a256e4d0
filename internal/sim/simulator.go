// Package sim runs a configured pendulum and collects its Poincaré
// section.
//
// Euler-Cromer and RK4 runs take k fixed steps per drive period and
// record every k-th state. RK45 and Bulirsch-Stoer runs advance to the
// exact section times t0 + (W+1+n)P, the first advance crossing all W
// warmup periods without intermediate landings. Both paths discard the
// warmup before recording.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/integrators"
	"github.com/san-kum/poincare/internal/physics"
	"github.com/san-kum/poincare/internal/sampling"
)

// Run integrates spec and returns its section points in temporal order.
// The context is checked once per drive period; on cancellation the
// points collected so far are returned with an error wrapping
// dynamo.ErrCanceled.
func Run(ctx context.Context, spec *config.RunSpec, opts ...Option) (*Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	var (
		result *Result
		err    error
	)
	if spec.Integrator.Method.IsAdaptive() {
		result, err = runAdaptive(ctx, spec, o)
	} else {
		result, err = runFixed(ctx, spec, o)
	}
	if result != nil {
		result.Elapsed = time.Since(start)
	}
	return result, err
}

func runFixed(ctx context.Context, spec *config.RunSpec, o *options) (*Result, error) {
	stepper, err := integrators.NewStepper(spec.Integrator.Method)
	if err != nil {
		return nil, err
	}

	p := &spec.Phys
	dt, k := integrators.DeriveDtAndK(p, &spec.Integrator)
	warmSteps := integrators.StepsForWarmup(&spec.Integrator, k)
	sampleSteps := integrators.StepsForSampling(&spec.Integrator, k)

	result := &Result{
		Method: spec.Integrator.Method,
		Period: physics.DrivePeriod(p.OmegaD),
		Dt:     dt,
		K:      k,
		Points: make([]dynamo.SamplePoint, 0, spec.Integrator.SamplePeriods),
	}

	x := spec.Init.State()
	for i := 0; i < warmSteps; i++ {
		if i%k == 0 {
			if err := checkPeriod(ctx, PhaseWarmup, i/k, x); err != nil {
				result.Stats.Accepted = i
				result.Final = x
				return result, err
			}
		}
		x = stepper.Step(x, p, dt)
		if (i+1)%k == 0 {
			o.report(PhaseWarmup, (i+1)/k, spec.Integrator.WarmupPeriods)
		}
	}
	result.Stats.Accepted += warmSteps

	sampler := sampling.NewStride(k, spec.Poincare.WrapToPi)
	for i := 0; i < sampleSteps; i++ {
		if i%k == 0 {
			if err := checkPeriod(ctx, PhaseSampling, i/k, x); err != nil {
				result.Stats.Accepted += i
				result.Final = x
				return result, err
			}
		}
		x = stepper.Step(x, p, dt)
		if sampler.ShouldRecord() {
			result.Points = append(result.Points, sampler.OnSample(x))
			o.report(PhaseSampling, len(result.Points), spec.Integrator.SamplePeriods)
		}
	}
	result.Stats.Accepted += sampleSteps
	result.Final = x

	return result, nil
}

func runAdaptive(ctx context.Context, spec *config.RunSpec, o *options) (*Result, error) {
	stepper, err := integrators.NewAdaptiveStepper(spec.Integrator.Method)
	if err != nil {
		return nil, err
	}
	if o.observer != nil {
		stepper.SetObserver(o.observer)
	}

	p := &spec.Phys
	tol := integrators.ResolveTolerances(p, &spec.Integrator)
	period := physics.DrivePeriod(p.OmegaD)
	warmup := spec.Integrator.WarmupPeriods

	result := &Result{
		Method:     spec.Integrator.Method,
		Period:     period,
		Tolerances: tol,
		Points:     make([]dynamo.SamplePoint, 0, spec.Integrator.SamplePeriods),
	}
	finish := func(x dynamo.State) {
		result.Final = x
		result.Stats = stepper.Stats()
	}

	x := spec.Init.State()
	grid := sampling.NewTimeGrid(x.T, warmup, period, spec.Poincare.WrapToPi)

	// The first advance runs through the whole warmup and lands on
	// t0 + (W+1)P; warmup periods have no landing points of their own.
	seed := tol
	for n := 0; n < spec.Integrator.SamplePeriods; n++ {
		phase := PhaseSampling
		if n == 0 && warmup > 0 {
			phase = PhaseWarmup
		}
		if err := checkPeriod(ctx, phase, n, x); err != nil {
			finish(x)
			return result, err
		}
		var h float64
		x, h = stepper.AdvanceTo(x, p, grid.TargetTime(), seed)
		seed.DtInit = clampStep(h, tol)
		if phase == PhaseWarmup {
			o.report(PhaseWarmup, warmup, warmup)
		}
		result.Points = append(result.Points, grid.OnSample(x))
		grid.Advance()
		o.report(PhaseSampling, n+1, spec.Integrator.SamplePeriods)
	}
	finish(x)

	return result, nil
}

func checkPeriod(ctx context.Context, phase Phase, period int, x dynamo.State) error {
	if err := ctx.Err(); err != nil {
		return &dynamo.RunError{
			Phase:   string(phase),
			Period:  period,
			State:   x,
			Wrapped: fmt.Errorf("%w: %w", dynamo.ErrCanceled, err),
		}
	}
	if !x.IsValid() {
		return &dynamo.RunError{
			Phase:   string(phase),
			Period:  period,
			State:   x,
			Wrapped: dynamo.ErrInvalidState,
		}
	}
	return nil
}

func clampStep(h float64, tol dynamo.Tolerances) float64 {
	return min(max(h, tol.DtMin), tol.DtMax)
}
