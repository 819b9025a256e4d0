package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Rounded panel around the canvas and the stats column
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Status indicators
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusError = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Header with decorative line
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Field is one label/value row of a metrics table.
type Field struct {
	Label string
	Value string
}

// FieldTable renders rows with labels padded to a common width.
func FieldTable(fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	lines := make([]string, len(fields))
	for i, f := range fields {
		label := f.Label + strings.Repeat(" ", width-lipgloss.Width(f.Label))
		lines[i] = MetricLabel.Render(label) + "  " + MetricValue.Render(f.Value)
	}
	return strings.Join(lines, "\n")
}

// ProgressBar renders a bar for percent in [0, 1]
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// SparklineChart renders a mini sparkline from values
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	rng := max - min
	if rng == 0 {
		rng = 1
	}

	// Sample the most recent values to fit width
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - min) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}

		c := chars[idx]
		if norm > 0.7 {
			result.WriteString(SparkHigh.Render(string(c)))
		} else if norm > 0.3 {
			result.WriteString(SparkMid.Render(string(c)))
		} else {
			result.WriteString(SparkLow.Render(string(c)))
		}
	}

	return result.String()
}

// Separator is a decorative horizontal rule
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
