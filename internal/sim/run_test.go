package sim_test

import (
	"context"
	"errors"
	"math"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/integrators"
	"github.com/san-kum/poincare/internal/physics"
	"github.com/san-kum/poincare/internal/sim"
)

type countingObserver struct {
	mu   sync.Mutex
	hits int
}

func (c *countingObserver) OnFloorAccept(t, h, errNorm float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
}

func weakDrive(m dynamo.Method) *config.RunSpec {
	spec := config.DefaultRunSpec()
	spec.Phys.FDrive = 0.5
	spec.Integrator = dynamo.IntegratorParams{Method: m, WarmupPeriods: 20, SamplePeriods: 5}
	return spec
}

var _ = Describe("Run", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("on the fixed-step path", func() {
		It("samples the chaotic pendulum deterministically", func() {
			spec := config.GetPreset("chaotic", "baker-gollub")

			first, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())
			second, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(first.Points).To(HaveLen(500))
			Expect(second.Points).To(Equal(first.Points))
		})

		It("derives an even step count that divides the period", func() {
			res, err := sim.Run(ctx, config.GetPreset("chaotic", "baker-gollub"))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Method).To(Equal(dynamo.RK4))
			Expect(res.K).To(Equal(354))
			Expect(float64(res.K) * res.Dt).To(BeNumerically("~", res.Period, 1e-12))
			Expect(res.Stats.Accepted).To(Equal(700 * 354))
			Expect(res.Final.T).To(BeNumerically("~", 700*res.Period, 1e-6))
		})

		It("wraps theta into (-pi, pi] only when asked", func() {
			spec := config.GetPreset("free", "spinning")
			spec.Integrator.SamplePeriods = 50

			wrapped, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())

			spec.Poincare.WrapToPi = false
			raw, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())

			Expect(raw.Points[len(raw.Points)-1].Theta).To(BeNumerically(">", math.Pi))
			for i, pt := range wrapped.Points {
				Expect(pt.Theta).To(BeNumerically(">", -math.Pi))
				Expect(pt.Theta).To(BeNumerically("<=", math.Pi))
				Expect(pt.Theta).To(Equal(physics.WrapAnglePi(raw.Points[i].Theta)))
				Expect(pt.Omega).To(Equal(raw.Points[i].Omega))
			}
		})
	})

	Context("on the adaptive path", func() {
		It("agrees with RK4 on a periodic attractor", func() {
			fixed, err := sim.Run(ctx, weakDrive(dynamo.RK4))
			Expect(err).NotTo(HaveOccurred())

			for _, m := range []dynamo.Method{dynamo.RK45, dynamo.BulirschStoer} {
				res, err := sim.Run(ctx, weakDrive(m))
				Expect(err).NotTo(HaveOccurred())
				Expect(res.Points).To(HaveLen(5))

				for i, pt := range res.Points {
					Expect(pt.Theta).To(BeNumerically("~", fixed.Points[i].Theta, 1e-6), "method %s", m)
					Expect(pt.Omega).To(BeNumerically("~", fixed.Points[i].Omega, 1e-6), "method %s", m)
				}
			}
		})

		It("lands exactly on the section times", func() {
			spec := weakDrive(dynamo.RK45)
			spec.Init.T0 = 0.75

			res, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())

			period := physics.DrivePeriod(spec.Phys.OmegaD)
			Expect(res.Final.T).To(Equal(0.75 + float64(20+1+4)*period))
			Expect(res.K).To(BeZero())
			Expect(res.Tolerances.Rtol).To(Equal(1e-8))
			Expect(res.Tolerances.DtMax).To(BeNumerically("~", period/20, 1e-15))
		})

		It("crosses the warmup in a single advance to the first section time", func() {
			spec := config.DefaultRunSpec()
			spec.Phys = dynamo.PhysicalParams{G: 1, L: 1, Q: 0.5, FDrive: 1.15, OmegaD: 2.0 / 3.0}
			spec.Integrator = dynamo.IntegratorParams{Method: dynamo.RK45, WarmupPeriods: 100, SamplePeriods: 100}

			res, err := sim.Run(ctx, spec)
			Expect(err).NotTo(HaveOccurred())

			stepper := integrators.NewRK45()
			tol := integrators.ResolveTolerances(&spec.Phys, &spec.Integrator)
			period := physics.DrivePeriod(spec.Phys.OmegaD)
			x := spec.Init.State()
			t0 := x.T
			seed := tol
			want := make([]dynamo.SamplePoint, 0, 100)
			for n := 0; n < 100; n++ {
				var h float64
				x, h = stepper.AdvanceTo(x, &spec.Phys, t0+float64(100+1+n)*period, seed)
				seed.DtInit = math.Min(math.Max(h, tol.DtMin), tol.DtMax)
				want = append(want, dynamo.SamplePoint{Theta: physics.WrapAnglePi(x.Theta), Omega: x.Omega})
			}

			Expect(res.Points).To(Equal(want))
			Expect(res.Stats).To(Equal(stepper.Stats()))
		})

		It("stays within tolerance at the default controls", func() {
			spec := config.GetPreset("chaotic", "bulirsch-stoer")
			spec.Integrator.SamplePeriods = 300

			obs := &countingObserver{}
			res, err := sim.Run(ctx, spec, sim.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Points).To(HaveLen(300))
			Expect(res.Stats.Accepted).To(BeNumerically(">", 0))
			Expect(res.Stats.FloorAccepts).To(BeZero())
			Expect(obs.hits).To(BeZero())
		})

		It("reports steps forced through at the minimum step size", func() {
			spec := weakDrive(dynamo.RK45)
			period := physics.DrivePeriod(spec.Phys.OmegaD)
			spec.Integrator.Rtol = 1e-14
			spec.Integrator.Atol = 1e-16
			spec.Integrator.DtMin = period / 8
			spec.Integrator.DtMax = period / 8

			obs := &countingObserver{}
			res, err := sim.Run(ctx, spec, sim.WithObserver(obs))
			Expect(err).NotTo(HaveOccurred())

			Expect(res.Points).To(HaveLen(5))
			Expect(res.Stats.Rejected).To(BeZero())
			Expect(res.Stats.FloorAccepts).To(BeNumerically(">", 0))
			Expect(obs.hits).To(Equal(res.Stats.FloorAccepts))
		})
	})

	Context("when the context ends", func() {
		DescribeTable("returns the points collected so far",
			func(m dynamo.Method) {
				ctx, cancel := context.WithCancel(ctx)
				defer cancel()

				spec := weakDrive(m)
				spec.Integrator.SamplePeriods = 50
				stop := func(phase sim.Phase, done, total int) {
					if phase == sim.PhaseSampling && done == 10 {
						cancel()
					}
				}

				res, err := sim.Run(ctx, spec, sim.WithProgress(stop))
				Expect(err).To(MatchError(dynamo.ErrCanceled))
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())

				var runErr *dynamo.RunError
				Expect(errors.As(err, &runErr)).To(BeTrue())
				Expect(runErr.Phase).To(Equal(string(sim.PhaseSampling)))
				Expect(runErr.Period).To(Equal(10))
				Expect(res.Points).To(HaveLen(10))
			},
			Entry("RK4", dynamo.RK4),
			Entry("Euler-Cromer", dynamo.EulerCromer),
			Entry("RK45", dynamo.RK45),
			Entry("Bulirsch-Stoer", dynamo.BulirschStoer),
		)

		It("stops during warmup when already canceled", func() {
			ctx, cancel := context.WithCancel(ctx)
			cancel()

			res, err := sim.Run(ctx, weakDrive(dynamo.RK45))
			Expect(err).To(MatchError(dynamo.ErrCanceled))
			Expect(res.Points).To(BeEmpty())
			Expect(res.Final.T).To(BeZero())
		})
	})

	It("rejects invalid parameters before integrating", func() {
		spec := config.DefaultRunSpec()
		spec.Phys.OmegaD = 0

		res, err := sim.Run(ctx, spec)
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		Expect(res).To(BeNil())
	})

	It("reports progress once per period on the fixed-step path", func() {
		counts := map[sim.Phase]int{}
		_, err := sim.Run(ctx, weakDrive(dynamo.RK4), sim.WithProgress(func(phase sim.Phase, done, total int) {
			counts[phase]++
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(counts).To(HaveKeyWithValue(sim.PhaseWarmup, 20))
		Expect(counts).To(HaveKeyWithValue(sim.PhaseSampling, 5))
	})

	It("reports the adaptive warmup once, as complete", func() {
		type report struct {
			phase       sim.Phase
			done, total int
		}
		var reports []report
		_, err := sim.Run(ctx, weakDrive(dynamo.BulirschStoer), sim.WithProgress(func(phase sim.Phase, done, total int) {
			reports = append(reports, report{phase, done, total})
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(reports).To(HaveLen(6))
		Expect(reports[0]).To(Equal(report{sim.PhaseWarmup, 20, 20}))
		Expect(reports[5]).To(Equal(report{sim.PhaseSampling, 5, 5}))
	})
})

var _ = Describe("Ensemble", func() {
	It("matches sequential runs in input order", func() {
		specs := []*config.RunSpec{
			weakDrive(dynamo.RK4),
			weakDrive(dynamo.EulerCromer),
			weakDrive(dynamo.RK45),
			weakDrive(dynamo.BulirschStoer),
		}

		results, err := sim.NewEnsemble(specs, 2).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(len(specs)))

		for i, spec := range specs {
			seq, err := sim.Run(context.Background(), spec)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[i].Method).To(Equal(spec.Integrator.Method))
			Expect(results[i].Points).To(Equal(seq.Points))
		}
	})

	It("fails when any run is invalid", func() {
		bad := config.DefaultRunSpec()
		bad.Integrator.SamplePeriods = 0

		_, err := sim.NewEnsemble([]*config.RunSpec{weakDrive(dynamo.RK4), bad}, 0).Run(context.Background())
		Expect(err).To(MatchError(dynamo.ErrParameterBounds))
	})
})
