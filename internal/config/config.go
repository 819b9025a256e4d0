package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/poincare/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFile    = "run.json"
	DefaultOutBase = "poincare"
	DefaultSidePx  = 1000
	DefaultTitle   = "Poincaré section"
	MinPlotPx      = 200
)

// RunSpec is the full description of one run and its outputs.
type RunSpec struct {
	Phys       dynamo.PhysicalParams   `yaml:"phys" json:"phys"`
	Integrator dynamo.IntegratorParams `yaml:"integrator" json:"integrator"`
	Init       dynamo.InitialState     `yaml:"init" json:"init"`
	Poincare   PoincareConfig          `yaml:"poincare" json:"poincare"`
	Plot       PlotView                `yaml:"plot" json:"plot"`
	Output     OutputConfig            `yaml:"output" json:"output"`
}

type PoincareConfig struct {
	WrapToPi bool `yaml:"wrap_to_pi" json:"wrap_to_pi"`
}

// PlotView controls the rendered section. SidePx is the edge of the
// square image; zero means min(WidthPx, HeightPx). MarkerSize zero
// picks a radius from the image size.
type PlotView struct {
	ThetaMin   float64 `yaml:"theta_min" json:"theta_min"`
	ThetaMax   float64 `yaml:"theta_max" json:"theta_max"`
	OmegaMin   float64 `yaml:"omega_min" json:"omega_min"`
	OmegaMax   float64 `yaml:"omega_max" json:"omega_max"`
	WidthPx    int     `yaml:"width_px" json:"width_px"`
	HeightPx   int     `yaml:"height_px" json:"height_px"`
	SidePx     int     `yaml:"side_px,omitempty" json:"side_px,omitempty"`
	Title      string  `yaml:"title" json:"title"`
	MarkerSize int     `yaml:"marker_size,omitempty" json:"marker_size,omitempty"`
}

type OutputConfig struct {
	OutBase string `yaml:"out_base" json:"out_base"`
}

// DefaultRunSpec is the classic chaotic pendulum sampled with RK4.
func DefaultRunSpec() *RunSpec {
	return &RunSpec{
		Phys: dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.15, OmegaD: 0.6667},
		Integrator: dynamo.IntegratorParams{
			Method:        dynamo.RK4,
			WarmupPeriods: 200,
			SamplePeriods: 500,
		},
		Init:     dynamo.InitialState{Theta0: 0.2},
		Poincare: PoincareConfig{WrapToPi: true},
		Plot: PlotView{
			ThetaMin: -math.Pi,
			ThetaMax: math.Pi,
			OmegaMin: -4,
			OmegaMax: 4,
			WidthPx:  DefaultSidePx,
			HeightPx: DefaultSidePx,
			Title:    DefaultTitle,
		},
		Output: OutputConfig{OutBase: DefaultOutBase},
	}
}

// Load reads a run spec in YAML or JSON. Absent fields keep their
// DefaultRunSpec values. The result is normalized and validated.
func Load(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes data over DefaultRunSpec. Sections merge field by
// field: a section that names only some of its keys keeps the defaults
// for the rest.
func Parse(data []byte) (*RunSpec, error) {
	spec := DefaultRunSpec()
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("parse run spec: %w", err)
	}
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func Save(path string, spec *RunSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize pins the theta view to [-π, π] and fills derived output
// settings.
func (s *RunSpec) Normalize() {
	s.Plot.ThetaMin = -math.Pi
	s.Plot.ThetaMax = math.Pi
	if strings.TrimSpace(s.Output.OutBase) == "" {
		s.Output.OutBase = DefaultOutBase
	}
	if s.Plot.SidePx <= 0 {
		s.Plot.SidePx = min(s.Plot.WidthPx, s.Plot.HeightPx)
	}
}

// Validate checks physical and numerical bounds. Every failure wraps
// dynamo.ErrParameterBounds.
func (s *RunSpec) Validate() error {
	p := s.Phys
	checks := []struct {
		ok  bool
		msg string
	}{
		{p.G > 0, "gravity must be positive"},
		{p.L > 0, "pendulum length must be positive"},
		{p.Q >= 0, "damping must be non-negative"},
		{p.OmegaD > 0, "drive frequency must be positive"},
		{isFinite(p.G, p.L, p.Q, p.FDrive, p.OmegaD), "physical parameters must be finite"},
		{isFinite(s.Init.Theta0, s.Init.Omega0, s.Init.T0), "initial state must be finite"},
		{s.Integrator.WarmupPeriods >= 0, "warmup periods must be non-negative"},
		{s.Integrator.SamplePeriods > 0, "sample periods must be positive"},
		{s.Integrator.DtUser >= 0, "dt_user must be non-negative"},
		{s.Plot.WidthPx >= MinPlotPx, fmt.Sprintf("plot width must be at least %d", MinPlotPx)},
		{s.Plot.HeightPx >= MinPlotPx, fmt.Sprintf("plot height must be at least %d", MinPlotPx)},
		{strings.TrimSpace(s.Output.OutBase) != "", "output base cannot be empty"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", dynamo.ErrParameterBounds, c.msg)
		}
	}
	return nil
}

// Period is the drive period 2π/omega_d.
func (s *RunSpec) Period() float64 {
	return 2 * math.Pi / s.Phys.OmegaD
}

func isFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
