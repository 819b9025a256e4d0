package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/poincare/internal/dynamo"
)

const (
	// DefaultResolution is the grid size used to tell section points apart.
	DefaultResolution = 1e-4
	// MaxPeriod is the longest orbit Period reports.
	MaxPeriod = 16
)

type Summary struct {
	N          int     `json:"n"`
	ThetaMean  float64 `json:"theta_mean"`
	ThetaCirc  float64 `json:"theta_circular_mean"`
	ThetaStd   float64 `json:"theta_std"`
	ThetaMin   float64 `json:"theta_min"`
	ThetaMax   float64 `json:"theta_max"`
	OmegaMean  float64 `json:"omega_mean"`
	OmegaStd   float64 `json:"omega_std"`
	OmegaMin   float64 `json:"omega_min"`
	OmegaMax   float64 `json:"omega_max"`
	Distinct   int     `json:"distinct"`
	Resolution float64 `json:"resolution"`
}

// Summarize computes section statistics. The standard deviations are
// zero for fewer than two points.
func Summarize(points []dynamo.SamplePoint) Summary {
	s := Summary{N: len(points), Resolution: DefaultResolution}
	if len(points) == 0 {
		return s
	}

	theta, omega := Split(points)

	s.ThetaMean = stat.Mean(theta, nil)
	s.ThetaCirc = stat.CircularMean(theta, nil)
	s.OmegaMean = stat.Mean(omega, nil)
	if len(points) > 1 {
		s.ThetaStd = stat.StdDev(theta, nil)
		s.OmegaStd = stat.StdDev(omega, nil)
	}

	s.ThetaMin, s.ThetaMax = floats.Min(theta), floats.Max(theta)
	s.OmegaMin, s.OmegaMax = floats.Min(omega), floats.Max(omega)
	s.Distinct = DistinctPoints(points, s.Resolution)

	return s
}

// Period returns n when the section holds n <= MaxPeriod distinct points
// and at least two visits per point.
func (s Summary) Period() (int, bool) {
	if s.Distinct == 0 || s.Distinct > MaxPeriod || s.N < 2*s.Distinct {
		return 0, false
	}
	return s.Distinct, true
}

// DistinctPoints counts points that differ after snapping both
// coordinates to a grid of the given resolution.
func DistinctPoints(points []dynamo.SamplePoint, resolution float64) int {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	seen := make(map[[2]int64]struct{}, len(points))
	for _, p := range points {
		key := [2]int64{
			int64(math.Round(p.Theta / resolution)),
			int64(math.Round(p.Omega / resolution)),
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}

// Split returns the theta and omega columns of points.
func Split(points []dynamo.SamplePoint) ([]float64, []float64) {
	theta := make([]float64, len(points))
	omega := make([]float64, len(points))
	for i, p := range points {
		theta[i], omega[i] = p.Theta, p.Omega
	}
	return theta, omega
}

// ThetaAbove keeps the points with theta strictly greater than min.
func ThetaAbove(points []dynamo.SamplePoint, min float64) []dynamo.SamplePoint {
	out := make([]dynamo.SamplePoint, 0)
	for _, p := range points {
		if p.Theta > min {
			out = append(out, p)
		}
	}
	return out
}
