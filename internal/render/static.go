package render

import (
	"bufio"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/poincare/internal/config"
	"github.com/san-kum/poincare/internal/dynamo"
)

// pixelDPI makes one point of plot length one pixel.
const pixelDPI = 72

func newSectionPlot(points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) (*plot.Plot, error) {
	yMin, yMax := DataYRange(points)
	side := Side(view)

	p := plot.New()
	p.Title.Text = view.Title
	p.Title.TextStyle.Font.Size = vg.Points(28)
	p.Title.Padding = vg.Points(20)
	p.X.Label.Text = "θ (radians)"
	p.Y.Label.Text = "ω (radians/s)"
	p.X.Label.TextStyle.Font.Size = vg.Points(22)
	p.Y.Label.TextStyle.Font.Size = vg.Points(22)
	p.X.Tick.Label.Font.Size = vg.Points(18)
	p.Y.Tick.Label.Font.Size = vg.Points(18)
	p.X.LineStyle.Width = vg.Points(2)
	p.Y.LineStyle.Width = vg.Points(2)

	p.X.Tick.Marker = integerTicker(xMin, xMax)
	p.Y.Tick.Marker = integerTicker(yMin, yMax)

	if len(points) > 0 {
		scatter, err := newScatter(points, MarkerRadius(view, side))
		if err != nil {
			return nil, err
		}
		p.Add(scatter)
	}

	// Add widens the axes to the data; pin them afterwards
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min, p.Y.Max = yMin, yMax

	return p, nil
}

func newScatter(points []dynamo.SamplePoint, radius int) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X, xys[i].Y = pt.Theta, pt.Omega
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Color = color.Black
	scatter.GlyphStyle.Radius = vg.Points(float64(radius))
	return scatter, nil
}

func integerTicker(min, max float64) plot.ConstantTicks {
	vals := IntegerTicks(min, max)
	ticks := make(plot.ConstantTicks, len(vals))
	for i, v := range vals {
		ticks[i] = plot.Tick{Value: float64(v), Label: strconv.Itoa(v)}
	}
	return ticks
}

// SavePNG draws the section into a side x side pixel PNG.
func SavePNG(path string, points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) error {
	p, err := newSectionPlot(points, view, xMin, xMax)
	if err != nil {
		return err
	}

	side := vg.Points(float64(Side(view)))
	c := vgimg.NewWith(vgimg.UseWH(side, side), vgimg.UseDPI(pixelDPI))
	dc := draw.New(c)
	p.Draw(dc)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

func SaveSVG(path string, points []dynamo.SamplePoint, view config.PlotView, xMin, xMax float64) error {
	p, err := newSectionPlot(points, view, xMin, xMax)
	if err != nil {
		return err
	}

	side := vg.Points(float64(Side(view)))
	c := vgsvg.New(side, side)
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create svg: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := c.WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write svg: %w", err)
	}
	return bw.Flush()
}
