package config

import (
	"sort"

	"github.com/san-kum/poincare/internal/dynamo"
)

// Presets groups ready-made runs by dynamical regime.
var Presets = map[string]map[string]*RunSpec{
	"chaotic": {
		"baker-gollub": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.15, OmegaD: 0.6667},
			dynamo.IntegratorParams{Method: dynamo.RK4, WarmupPeriods: 200, SamplePeriods: 500}, 0.2, 0),
		"dormand-prince": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.2, OmegaD: 2.0 / 3.0},
			dynamo.IntegratorParams{Method: dynamo.RK45, WarmupPeriods: 100, SamplePeriods: 2000}, 0.2, 0),
		"bulirsch-stoer": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.2, OmegaD: 2.0 / 3.0},
			dynamo.IntegratorParams{Method: dynamo.BulirschStoer, WarmupPeriods: 100, SamplePeriods: 2000, Rtol: 1e-10, Atol: 1e-12}, 0.2, 0),
		"euler-cromer": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.15, OmegaD: 0.6667},
			dynamo.IntegratorParams{Method: dynamo.EulerCromer, WarmupPeriods: 200, SamplePeriods: 1000}, 0.2, 0),
	},
	"periodic": {
		"weak-drive": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 0.5, OmegaD: 0.6667},
			dynamo.IntegratorParams{Method: dynamo.RK4, WarmupPeriods: 300, SamplePeriods: 200}, 0.2, 0),
		"period-doubling": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.07, OmegaD: 2.0 / 3.0},
			dynamo.IntegratorParams{Method: dynamo.RK45, WarmupPeriods: 500, SamplePeriods: 200}, 0.2, 0),
	},
	"free": {
		"undamped": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0, FDrive: 0, OmegaD: 1.0},
			dynamo.IntegratorParams{Method: dynamo.RK4, SamplePeriods: 500}, 1.0, 0),
		"spinning": preset(dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0, FDrive: 0, OmegaD: 1.0},
			dynamo.IntegratorParams{Method: dynamo.RK4, SamplePeriods: 500}, 0.1, 8.0),
	},
}

func preset(p dynamo.PhysicalParams, ip dynamo.IntegratorParams, theta0, omega0 float64) *RunSpec {
	spec := DefaultRunSpec()
	spec.Phys = p
	spec.Integrator = ip
	spec.Init = dynamo.InitialState{Theta0: theta0, Omega0: omega0}
	spec.Normalize()
	return spec
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(regime, name string) *RunSpec {
	group, ok := Presets[regime]
	if !ok {
		return nil
	}
	spec, ok := group[name]
	if !ok {
		return nil
	}
	cp := *spec
	cp.Output.OutBase = regime + "_" + name
	return &cp
}

func ListPresets(regime string) []string {
	group, ok := Presets[regime]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListRegimes() []string {
	regimes := make([]string, 0, len(Presets))
	for r := range Presets {
		regimes = append(regimes, r)
	}
	sort.Strings(regimes)
	return regimes
}
