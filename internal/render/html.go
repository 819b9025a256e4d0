package render

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
)

func newSectionChart(points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) *charts.Scatter {
	yMin, yMax := DataYRange(points)
	side := Side(view)
	px := fmt.Sprintf("%dpx", side)

	chart := charts.NewScatter()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: view.Title,
			Width:     px,
			Height:    px,
		}),
		charts.WithTitleOpts(opts.Title{Title: view.Title}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "θ (radians)",
			Type: "value",
			Min:  xMin,
			Max:  xMax,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "ω (radians/s)",
			Type: "value",
			Min:  yMin,
			Max:  yMax,
		}),
	)

	radius := MarkerRadius(view, side)
	data := make([]opts.ScatterData, len(points))
	for i, p := range points {
		data[i] = opts.ScatterData{Value: []float64{p.Theta, p.Omega}, SymbolSize: 2 * radius}
	}
	chart.AddSeries("section", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))

	return chart
}

// WriteHTML renders the interactive chart page to w.
func WriteHTML(w io.Writer, points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) error {
	return newSectionChart(points, view, xMin, xMax).Render(w)
}

func SaveHTML(path string, points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create html: %w", err)
	}
	defer f.Close()

	return WriteHTML(f, points, view, xMin, xMax)
}
