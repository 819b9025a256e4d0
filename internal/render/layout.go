package render

import (
	"math"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
)

const (
	// SectionXMin and SectionXMax bound the theta axis of a full section.
	SectionXMin = -4.0
	SectionXMax = 4.0

	// ROITheta selects the region of interest theta > ROITheta, drawn
	// over [ROIXMin, ROIXMax].
	ROITheta  = 2.0
	ROIXMin   = 1.9
	ROIXMax   = 3.3
	ROISuffix = "__theta_gt_2"

	// omega axis of a section with no points
	emptyYMin = -4.0
	emptyYMax = 4.0

	minYSpan   = 0.2
	yPadFactor = 0.05
)

// DataYRange is the omega range of points padded by 5% of its span,
// with the span at least 0.2. Constant data is widened by ±1 first;
// an empty section gets [-4, 4].
func DataYRange(points []dynamo.SamplePoint) (float64, float64) {
	if len(points) == 0 {
		return emptyYMin, emptyYMax
	}

	lo, hi := points[0].Omega, points[0].Omega
	for _, p := range points[1:] {
		lo = math.Min(lo, p.Omega)
		hi = math.Max(hi, p.Omega)
	}
	if lo == hi {
		lo--
		hi++
	}

	pad := yPadFactor * math.Max(hi-lo, minYSpan)
	return lo - pad, hi + pad
}

// IntegerTicks lists the integers in [min, max].
func IntegerTicks(min, max float64) []int {
	start, end := math.Ceil(min), math.Floor(max)
	if start > end {
		return nil
	}
	ticks := make([]int, 0, int(end-start)+1)
	for v := int(start); v <= int(end); v++ {
		ticks = append(ticks, v)
	}
	return ticks
}

// MarkerRadius is view.MarkerSize when set, else 2 px for sides of at
// least 1000 px and 1 px below.
func MarkerRadius(view config.PlotView, side int) int {
	if view.MarkerSize > 0 {
		return view.MarkerSize
	}
	if side >= 1000 {
		return 2
	}
	return 1
}

// Side is the edge length in pixels of the square plot.
func Side(view config.PlotView) int {
	if view.SidePx > 0 {
		return view.SidePx
	}
	return min(view.WidthPx, view.HeightPx)
}
