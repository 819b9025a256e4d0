package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/poincare/internal/dynamo"
)

func TestSummarize(t *testing.T) {
	points := []dynamo.SamplePoint{
		{Theta: 1, Omega: -1},
		{Theta: 2, Omega: 0},
		{Theta: 3, Omega: 1},
	}
	s := Summarize(points)

	if s.N != 3 {
		t.Errorf("N = %d", s.N)
	}
	if s.ThetaMean != 2 || s.OmegaMean != 0 {
		t.Errorf("means = %f, %f", s.ThetaMean, s.OmegaMean)
	}
	if math.Abs(s.ThetaStd-1) > 1e-12 || math.Abs(s.OmegaStd-1) > 1e-12 {
		t.Errorf("std = %f, %f", s.ThetaStd, s.OmegaStd)
	}
	if s.ThetaMin != 1 || s.ThetaMax != 3 || s.OmegaMin != -1 || s.OmegaMax != 1 {
		t.Errorf("bounds wrong: %+v", s)
	}
	if s.Distinct != 3 {
		t.Errorf("distinct = %d", s.Distinct)
	}
}

func TestSummarizeCircularMean(t *testing.T) {
	// points straddling the wrap seam average to pi, not zero
	points := []dynamo.SamplePoint{{Theta: math.Pi - 0.1}, {Theta: -math.Pi + 0.1}}
	s := Summarize(points)

	if math.Abs(s.ThetaMean) > 1e-12 {
		t.Errorf("arithmetic mean = %f, want 0", s.ThetaMean)
	}
	if math.Abs(math.Abs(s.ThetaCirc)-math.Pi) > 1e-9 {
		t.Errorf("circular mean = %f, want ±pi", s.ThetaCirc)
	}
}

func TestSummarizeSmallInputs(t *testing.T) {
	if s := Summarize(nil); s.N != 0 || s.Distinct != 0 {
		t.Errorf("empty summary = %+v", s)
	}

	s := Summarize([]dynamo.SamplePoint{{Theta: 0.5, Omega: 0.25}})
	if s.ThetaStd != 0 || s.OmegaStd != 0 {
		t.Errorf("single point std should be zero, got %+v", s)
	}
}

func TestPeriod(t *testing.T) {
	var cycle []dynamo.SamplePoint
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			cycle = append(cycle, dynamo.SamplePoint{Theta: 0.5 + 1e-7*float64(i%3), Omega: 1})
		} else {
			cycle = append(cycle, dynamo.SamplePoint{Theta: -0.5, Omega: -1})
		}
	}

	n, ok := Summarize(cycle).Period()
	if !ok || n != 2 {
		t.Errorf("Period() = %d, %v, want 2, true", n, ok)
	}

	var spread []dynamo.SamplePoint
	for i := 0; i < 100; i++ {
		spread = append(spread, dynamo.SamplePoint{Theta: float64(i) * 0.01, Omega: 0})
	}
	if _, ok := Summarize(spread).Period(); ok {
		t.Error("spread section reported as periodic")
	}

	if _, ok := Summarize(cycle[:3]).Period(); ok {
		t.Error("too few visits reported as periodic")
	}
}

func TestThetaAbove(t *testing.T) {
	points := []dynamo.SamplePoint{{Theta: 1.9}, {Theta: 2.0}, {Theta: 2.5, Omega: 1}, {Theta: 3.1}}
	got := ThetaAbove(points, 2.0)

	if len(got) != 2 || got[0].Theta != 2.5 || got[1].Theta != 3.1 {
		t.Errorf("ThetaAbove = %+v", got)
	}
	if out := ThetaAbove(nil, 2); out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", out)
	}
}

func TestSectionToASCII(t *testing.T) {
	points := []dynamo.SamplePoint{{Theta: -1, Omega: -1}, {Theta: 1, Omega: 1}}
	out := SectionToASCII(points, 21, 11)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(lines))
	}
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 markers:\n%s", out)
	}
	if !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected both axes:\n%s", out)
	}

	if SectionToASCII(nil, 10, 10) != "No section points" {
		t.Error("unexpected output for empty section")
	}
}
