package viz

import (
	"math"

	"github.com/san-kum/poincare/internal/dynamo"
)

// Bounds is the data window shown on a canvas.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
}

// project maps data coordinates to sub-pixels, y growing downwards.
// ok is false outside the window.
func (b Bounds) project(c *Canvas, x, y float64) (int, int, bool) {
	if x < b.XMin || x > b.XMax || y < b.YMin || y > b.YMax {
		return 0, 0, false
	}
	pw, ph := c.PixelSize()
	px := int(math.Round((x - b.XMin) / (b.XMax - b.XMin) * float64(pw-1)))
	py := int(math.Round((b.YMax - y) / (b.YMax - b.YMin) * float64(ph-1)))
	return px, py, true
}

// DrawSection plots points on c with the theta = 0 and omega = 0 axes
// where they fall inside the window.
func DrawSection(c *Canvas, points []dynamo.SamplePoint, b Bounds) {
	c.Clear()
	pw, ph := c.PixelSize()

	if x, _, ok := b.project(c, 0, b.YMin); ok {
		c.DrawLine(x, 0, x, ph-1)
	}
	if _, y, ok := b.project(c, b.XMin, 0); ok {
		c.DrawLine(0, y, pw-1, y)
	}

	for _, p := range points {
		if x, y, ok := b.project(c, p.Theta, p.Omega); ok {
			c.Set(x, y)
		}
	}
}

// RenderSection draws points on a fresh w x h cell canvas.
func RenderSection(points []dynamo.SamplePoint, w, h int, b Bounds) string {
	c := NewCanvas(w, h)
	DrawSection(c, points, b)
	return c.String()
}
