package dynamo

import (
	"fmt"
	"math"
	"strings"
)

// State is the pendulum phase-space point at time T.
type State struct {
	T     float64
	Theta float64
	Omega float64
}

func (s State) IsValid() bool {
	for _, v := range [3]float64{s.T, s.Theta, s.Omega} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) String() string {
	return fmt.Sprintf("t=%.6f theta=%.6f omega=%.6f", s.T, s.Theta, s.Omega)
}

// PhysicalParams describes the driven, damped pendulum
// theta'' = -(G/L) sin(theta) - Q theta' + FDrive sin(OmegaD t).
type PhysicalParams struct {
	G      float64 `yaml:"g" json:"g"`
	L      float64 `yaml:"l" json:"l"`
	Q      float64 `yaml:"q" json:"q"`
	FDrive float64 `yaml:"f_drive" json:"f_drive"`
	OmegaD float64 `yaml:"omega_d" json:"omega_d"`
}

type InitialState struct {
	Theta0 float64 `yaml:"theta0" json:"theta0"`
	Omega0 float64 `yaml:"omega0" json:"omega0"`
	T0     float64 `yaml:"t0" json:"t0"`
}

func (i InitialState) State() State {
	return State{T: i.T0, Theta: i.Theta0, Omega: i.Omega0}
}

type SamplePoint struct {
	Theta float64 `json:"theta"`
	Omega float64 `json:"omega"`
}

// Method is the closed set of integration schemes.
type Method int

const (
	EulerCromer Method = iota
	RK4
	RK45
	BulirschStoer
)

var methodNames = [...]string{
	EulerCromer:   "EulerCromer",
	RK4:           "RK4",
	RK45:          "RK45",
	BulirschStoer: "BulirschStoer",
}

// Methods lists every supported method in declaration order.
func Methods() []Method {
	return []Method{EulerCromer, RK4, RK45, BulirschStoer}
}

func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}

// IsAdaptive reports whether m integrates with error-controlled steps.
func (m Method) IsAdaptive() bool {
	return m == RK45 || m == BulirschStoer
}

// ParseMethod accepts the canonical names as well as snake/kebab case
// spellings such as "euler_cromer", "rk-45" or "bs".
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(s)
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "eulercromer", "ec", "euler":
		return EulerCromer, nil
	case "rk4":
		return RK4, nil
	case "rk45", "dopri", "dormandprince":
		return RK45, nil
	case "bulirschstoer", "bs":
		return BulirschStoer, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

func (m Method) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(methodNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// IntegratorParams holds the numerical controls of a run. Optional
// fields are zero when absent; non-positive adaptive fields fall back
// to values derived from the drive period.
type IntegratorParams struct {
	Method        Method  `yaml:"method" json:"method"`
	DtUser        float64 `yaml:"dt_user,omitempty" json:"dt_user,omitempty"`
	WarmupPeriods int     `yaml:"n_periods_warmup" json:"n_periods_warmup"`
	SamplePeriods int     `yaml:"n_periods_samples" json:"n_periods_samples"`
	Rtol          float64 `yaml:"rtol,omitempty" json:"rtol,omitempty"`
	Atol          float64 `yaml:"atol,omitempty" json:"atol,omitempty"`
	DtInit        float64 `yaml:"dt_init,omitempty" json:"dt_init,omitempty"`
	DtMin         float64 `yaml:"dt_min,omitempty" json:"dt_min,omitempty"`
	DtMax         float64 `yaml:"dt_max,omitempty" json:"dt_max,omitempty"`
}

// Tolerances are the resolved controls of an adaptive integrator.
type Tolerances struct {
	Rtol   float64 `json:"rtol"`
	Atol   float64 `json:"atol"`
	DtInit float64 `json:"dt_init"`
	DtMin  float64 `json:"dt_min"`
	DtMax  float64 `json:"dt_max"`
}

// StepObserver receives adaptive steps that were accepted only because
// they reached the minimum step size.
type StepObserver interface {
	OnFloorAccept(t, h, errNorm float64)
}

// Stats counts the work done by an adaptive integrator.
type Stats struct {
	Accepted     int `json:"accepted"`
	Rejected     int `json:"rejected"`
	FloorAccepts int `json:"floor_accepts"`
	Evaluations  int `json:"evaluations"`
}

func (s *Stats) Add(other Stats) {
	s.Accepted += other.Accepted
	s.Rejected += other.Rejected
	s.FloorAccepts += other.FloorAccepts
	s.Evaluations += other.Evaluations
}
