package analysis

import (
	"strings"

	"github.com/san-kum/poincare/internal/dynamo"
)

// SectionToASCII draws points on a width x height character grid with
// 10% padding around the data and axes where they are in view.
func SectionToASCII(points []dynamo.SamplePoint, width, height int) string {
	if len(points) == 0 {
		return "No section points"
	}
	if width < 2 || height < 2 {
		return ""
	}

	theta, omega := Split(points)
	minX, maxX := bounds(theta)
	minY, maxY := bounds(omega)

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.Theta - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Omega-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func bounds(vals []float64) (float64, float64) {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}
