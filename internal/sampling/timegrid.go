package sampling

import "github.com/san-kum/poincare/internal/dynamo"

// TimeGrid yields the section times of an adaptive run. Each target is
// computed from its index, so rounding never accumulates along the grid.
type TimeGrid struct {
	t0     float64
	warmup int
	period float64
	n      int
	wrap   bool
}

func NewTimeGrid(t0 float64, warmupPeriods int, period float64, wrap bool) *TimeGrid {
	if warmupPeriods < 0 {
		warmupPeriods = 0
	}
	return &TimeGrid{t0: t0, warmup: warmupPeriods, period: period, wrap: wrap}
}

// TargetTime is t0 + (W+1+n)P for the n-th pending sample.
func (g *TimeGrid) TargetTime() float64 {
	return g.t0 + float64(g.warmup+1+g.n)*g.period
}

// WarmupEnd is t0 + W*P, where sampling starts.
func (g *TimeGrid) WarmupEnd() float64 {
	return g.t0 + float64(g.warmup)*g.period
}

func (g *TimeGrid) Advance() {
	g.n++
}

// Index is the number of targets already advanced past.
func (g *TimeGrid) Index() int { return g.n }

func (g *TimeGrid) OnSample(x dynamo.State) dynamo.SamplePoint {
	return toPoint(x, g.wrap)
}
