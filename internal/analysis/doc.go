// Package analysis summarizes Poincaré sections.
//
//   - [Summarize]: moments and bounds of theta and omega, with a circular
//     mean for theta, plus a count of distinct section points
//   - [Summary.Period]: detects period-n orbits from the distinct count
//   - [ThetaAbove]: region-of-interest filter
//   - [SectionToASCII]: character plot of a section for terminals
//
// A period-n attractor leaves n distinct points on the section, while a
// chaotic one fills a fractal set:
//
//	s := analysis.Summarize(points)
//	if n, ok := s.Period(); ok {
//	    fmt.Printf("period-%d orbit\n", n)
//	}
package analysis
