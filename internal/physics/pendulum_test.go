package physics

import (
	"math"
	"testing"

	"github.com/san-kum/poincare/internal/dynamo"
)

func TestDeriveEquilibrium(t *testing.T) {
	p := dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5}

	dtheta, domega := Derive(0, 0, 0, &p)

	if math.Abs(dtheta) > 1e-12 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dtheta)
	}
	if math.Abs(domega) > 1e-12 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", domega)
	}
}

func TestDeriveTerms(t *testing.T) {
	p := dynamo.PhysicalParams{G: 9.8, L: 2.0, Q: 0.5, FDrive: 1.2, OmegaD: 2.0 / 3.0}

	tests := []struct {
		name                string
		theta, omega, time  float64
		wantDtheta, wantDom float64
	}{
		{"gravity only", math.Pi / 2, 0, 0, 0, -4.9},
		{"damping only", 0, 2.0, 0, 2.0, -1.0},
		{"drive only", 0, 0, 0.75 * math.Pi, 0, 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dtheta, domega := Derive(tt.theta, tt.omega, tt.time, &p)
			if math.Abs(dtheta-tt.wantDtheta) > 1e-12 {
				t.Errorf("dtheta = %f, want %f", dtheta, tt.wantDtheta)
			}
			if math.Abs(domega-tt.wantDom) > 1e-12 {
				t.Errorf("domega = %f, want %f", domega, tt.wantDom)
			}
		})
	}
}

func TestDeriveAllocationFree(t *testing.T) {
	p := dynamo.PhysicalParams{G: 9.8, L: 1.0, Q: 0.5, FDrive: 1.15, OmegaD: 0.6667}
	allocs := testing.AllocsPerRun(100, func() {
		_, _ = Derive(0.3, -0.2, 1.5, &p)
	})
	if allocs != 0 {
		t.Errorf("Derive allocated %v times per call", allocs)
	}
}

func TestWrapAnglePi(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-2 * math.Pi, 0},
		{1.5 * math.Pi, -0.5 * math.Pi},
		{-1.5 * math.Pi, 0.5 * math.Pi},
		{7.0, 7.0 - 2*math.Pi},
	}

	for _, tt := range tests {
		got := WrapAnglePi(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAnglePi(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestWrapAnglePiRangeAndIdempotence(t *testing.T) {
	for i := -2000; i <= 2000; i++ {
		theta := float64(i) * 0.0137 * math.Pi
		w := WrapAnglePi(theta)
		if w <= -math.Pi || w > math.Pi {
			t.Fatalf("WrapAnglePi(%f) = %f outside (-π, π]", theta, w)
		}
		if again := WrapAnglePi(w); again != w {
			t.Fatalf("WrapAnglePi not idempotent at %f: %f then %f", theta, w, again)
		}
	}
}

func TestWrapAnglePiTinyNegative(t *testing.T) {
	if got := WrapAnglePi(-1e-17 - 2*math.Pi); got <= -math.Pi || got > math.Pi {
		t.Errorf("expected wrapped value in range, got %v", got)
	}
}

func TestDrivePeriod(t *testing.T) {
	if got := DrivePeriod(1.0); math.Abs(got-2*math.Pi) > 1e-15 {
		t.Errorf("DrivePeriod(1) = %f", got)
	}
	if got := DrivePeriod(2.0 / 3.0); math.Abs(got-3*math.Pi) > 1e-12 {
		t.Errorf("DrivePeriod(2/3) = %f, want 3π", got)
	}
}

func TestEnergy(t *testing.T) {
	p := dynamo.PhysicalParams{G: 9.8, L: 1.0}

	bottom := Energy(dynamo.State{}, &p)
	if math.Abs(bottom+9.8) > 1e-12 {
		t.Errorf("expected -g/l at rest, got %f", bottom)
	}

	top := Energy(dynamo.State{Theta: math.Pi}, &p)
	if math.Abs(top-9.8) > 1e-12 {
		t.Errorf("expected g/l inverted, got %f", top)
	}

	moving := Energy(dynamo.State{Omega: 2}, &p)
	if math.Abs(moving-(2-9.8)) > 1e-12 {
		t.Errorf("expected kinetic term, got %f", moving)
	}
}
