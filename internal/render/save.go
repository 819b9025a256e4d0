package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/poincare/internal/analysis"
	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
)

// SaveAll writes <base>.png, <base>.svg and <base>.html into dir with
// the theta axis over [xMin, xMax] and returns the written paths.
func SaveAll(dir, base string, points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create directory: %w", err)
	}

	writers := []struct {
		ext  string
		save func(string, []dynamo.SamplePoint, config.PlotView, float64, float64) error
	}{
		{".png", SavePNG},
		{".svg", SaveSVG},
		{".html", SaveHTML},
	}

	paths := make([]string, 0, len(writers))
	for _, w := range writers {
		path := filepath.Join(dir, base+w.ext)
		if err := w.save(path, points, view, xMin, xMax); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveSection writes the full section under view's out_base and the
// theta > 2 region of interest under out_base + ROISuffix.
func SaveSection(dir string, points []dynamo.SamplePoint, spec *config.RunSpec) ([]string, error) {
	base := spec.Output.OutBase

	paths, err := SaveAll(dir, base, points, spec.Plot, SectionXMin, SectionXMax)
	if err != nil {
		return paths, err
	}

	roi := analysis.ThetaAbove(points, ROITheta)
	roiPaths, err := SaveAll(dir, base+ROISuffix, roi, spec.Plot, ROIXMin, ROIXMax)
	return append(paths, roiPaths...), err
}
