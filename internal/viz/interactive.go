package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/poincare/internal/analysis"
	"github.com/san-kum/poincare/internal/dynamo"
	"github.com/san-kum/poincare/internal/render"
)

// Section is a loaded set of section points plus the run facts shown
// beside the plot.
type Section struct {
	Title  string
	Points []dynamo.SamplePoint
	Fields []Field
}

// Source is one entry of the viewer menu. Load runs off the UI loop.
type Source struct {
	Name   string
	Detail string
	Load   func(ctx context.Context) (*Section, error)
}

type TickMsg time.Time

type loadedMsg struct {
	section *Section
	err     error
}

const (
	stateMenu = iota
	stateLoading
	stateSection
)

const (
	canvasCols   = 60
	canvasRows   = 22
	revealFrames = 90
	sparkWidth   = 32
)

type model struct {
	ctx           context.Context
	state, cursor int
	sources       []Source
	section       *Section
	summary       analysis.Summary
	err           error
	shown         int
	paused        bool
	roi           bool
	width, height int
}

// NewViewer builds the viewer model. A single source is loaded straight
// away without showing the menu.
func NewViewer(ctx context.Context, sources []Source) model {
	m := model{ctx: ctx, sources: sources, width: 100, height: 30}
	if len(sources) == 1 {
		m.state = stateLoading
	}
	return m
}

func (m model) Init() tea.Cmd {
	if m.state == stateLoading {
		return m.load(0)
	}
	return nil
}

func (m model) load(i int) tea.Cmd {
	src, ctx := m.sources[i], m.ctx
	return func() tea.Msg {
		s, err := src.Load(ctx)
		return loadedMsg{section: s, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case loadedMsg:
		if msg.err != nil {
			m.err, m.state = msg.err, stateMenu
			return m, nil
		}
		m.section, m.err = msg.section, nil
		m.summary = analysis.Summarize(msg.section.Points)
		m.state, m.shown, m.paused = stateSection, 0, false
		return m, tick()
	case TickMsg:
		if m.state != stateSection || m.paused || m.revealed() {
			return m, nil
		}
		m.shown += m.revealStep()
		if m.revealed() {
			m.shown = len(m.section.Points)
			return m, nil
		}
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) revealed() bool {
	return m.section == nil || m.shown >= len(m.section.Points)
}

func (m model) revealStep() int {
	n := len(m.section.Points)
	return max(1, (n+revealFrames-1)/revealFrames)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if k := msg.String(); k == "ctrl+c" || k == "q" {
		return m, tea.Quit
	}

	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateSection:
		return m.sectionKey(msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.sources)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.sources) == 0 {
			return m, nil
		}
		m.state = stateLoading
		return m, m.load(m.cursor)
	}
	return m, nil
}

func (m model) sectionKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case " ", "space":
		m.paused = !m.paused
		if !m.paused && !m.revealed() {
			return m, tick()
		}
	case "r":
		m.shown, m.paused = 0, false
		return m, tick()
	case "z":
		m.roi = !m.roi
	case "t":
		NextTheme()
	case "esc", "backspace":
		if len(m.sources) > 1 {
			m.state, m.section = stateMenu, nil
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateLoading:
		name := ""
		if m.cursor < len(m.sources) {
			name = m.sources[m.cursor].Name
		}
		return "\n\n    " + Subtle.Render("integrating "+name+" ...") + "\n"
	case stateSection:
		return m.viewSection()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	b.WriteString("\n\n    " + h.Render("POINCARÉ") + "\n    " + Subtle.Render("driven damped pendulum sections") + "\n    " + Separator(31) + "\n\n")

	if len(m.sources) == 0 {
		b.WriteString("    " + Subtle.Render("no runs") + "\n")
	}
	for i, src := range m.sources {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true).Render(fmt.Sprintf("%-28s", src.Name)),
				lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Render(src.Detail)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Render(fmt.Sprintf("  %-28s", src.Name)),
				Subtle.Render(src.Detail)))
		}
	}

	if m.err != nil {
		b.WriteString("\n    " + StatusError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  enter open  q quit") + "\n")
	return b.String()
}

// window returns the points to plot and the data window. The y range is
// taken from the full section so the axes hold still during the reveal.
func (m model) window() ([]dynamo.SamplePoint, Bounds) {
	all := m.section.Points
	visible := all[:min(m.shown, len(all))]
	b := Bounds{XMin: render.SectionXMin, XMax: render.SectionXMax}
	if m.roi {
		all = analysis.ThetaAbove(all, render.ROITheta)
		visible = analysis.ThetaAbove(visible, render.ROITheta)
		b.XMin, b.XMax = render.ROIXMin, render.ROIXMax
	}
	b.YMin, b.YMax = render.DataYRange(all)
	return visible, b
}

func (m model) viewSection() string {
	visible, b := m.window()

	plot := lipgloss.NewStyle().Foreground(CurrentTheme.Primary).
		Render(strings.TrimRight(RenderSection(visible, canvasCols, canvasRows, b), "\n"))
	axis := Subtle.Render(fmt.Sprintf("θ ∈ [%.1f, %.1f]   ω ∈ [%.2f, %.2f]", b.XMin, b.XMax, b.YMin, b.YMax))
	canvasView := Panel.Render(plot + "\n" + axis)

	fields := append([]Field{}, m.section.Fields...)
	fields = append(fields, m.summaryFields()...)

	omegas := make([]float64, len(visible))
	for i, p := range visible {
		omegas[i] = p.Omega
	}

	status := StatusRunning.Render("REVEALING")
	switch {
	case m.revealed():
		status = StatusRunning.Render("COMPLETE")
	case m.paused:
		status = StatusPaused.Render("PAUSED")
	}
	region := "full"
	if m.roi {
		region = fmt.Sprintf("θ > %.0f", render.ROITheta)
	}

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(m.section.Title) + "\n\n")
	s.WriteString(FieldTable(fields) + "\n\n")
	s.WriteString(MetricLabel.Render("ω per period") + "\n")
	s.WriteString(SparklineChart(omegas, sparkWidth) + "\n\n")
	s.WriteString(ProgressBar(m.progress(), sparkWidth) + "\n")
	s.WriteString(fmt.Sprintf("%s  %s  %s\n\n", status,
		MetricLabel.Render("region "+region),
		MetricLabel.Render("theme "+CurrentTheme.Name)))
	s.WriteString(KeyHint.Render("space pause  r replay  z zoom  t theme"))
	if len(m.sources) > 1 {
		s.WriteString(KeyHint.Render("  esc back"))
	}
	s.WriteString(KeyHint.Render("  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, Panel.Render(s.String()))
}

func (m model) progress() float64 {
	n := len(m.section.Points)
	if n == 0 {
		return 1
	}
	return float64(min(m.shown, n)) / float64(n)
}

func (m model) summaryFields() []Field {
	s := m.summary
	if s.N == 0 {
		return []Field{{Label: "points", Value: "0"}}
	}

	period := "none ≤ " + fmt.Sprint(analysis.MaxPeriod)
	if k, ok := s.Period(); ok {
		period = fmt.Sprint(k)
	}
	return []Field{
		{Label: "points", Value: fmt.Sprint(s.N)},
		{Label: "distinct", Value: fmt.Sprint(s.Distinct)},
		{Label: "period", Value: period},
		{Label: "θ circ mean", Value: fmt.Sprintf("%+.4f", s.ThetaCirc)},
		{Label: "ω range", Value: fmt.Sprintf("[%.3f, %.3f]", s.OmegaMin, s.OmegaMax)},
		{Label: "ω std", Value: fmt.Sprintf("%.4f", s.OmegaStd)},
		{Label: "ω span", Value: fmt.Sprintf("%.3g", math.Abs(s.OmegaMax-s.OmegaMin))},
	}
}

// RunViewer runs the full-screen section browser until the user quits.
func RunViewer(ctx context.Context, sources []Source) error {
	_, err := tea.NewProgram(NewViewer(ctx, sources), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
