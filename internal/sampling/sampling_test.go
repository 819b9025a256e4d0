package sampling

import (
	"math"
	"testing"

	"github.com/san-kum/poincare/internal/dynamo"
)

func TestStrideFiresEveryK(t *testing.T) {
	s := NewStride(4, false)

	var fired []int
	for step := 1; step <= 40; step++ {
		if s.ShouldRecord() {
			fired = append(fired, step)
		}
	}

	if len(fired) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(fired))
	}
	for i, step := range fired {
		if step != 4*(i+1) {
			t.Errorf("sample %d at step %d, want %d", i, step, 4*(i+1))
		}
	}
}

func TestStrideReset(t *testing.T) {
	s := NewStride(3, false)
	s.ShouldRecord()
	s.ShouldRecord()
	s.Reset()

	if s.ShouldRecord() || s.ShouldRecord() {
		t.Error("reset stride fired early")
	}
	if !s.ShouldRecord() {
		t.Error("reset stride did not fire on the third step")
	}
}

func TestStrideWrapsOnSample(t *testing.T) {
	x := dynamo.State{T: 1, Theta: 3 * math.Pi / 2, Omega: 0.7}

	got := NewStride(2, true).OnSample(x)
	if math.Abs(got.Theta-(-math.Pi/2)) > 1e-12 || got.Omega != 0.7 {
		t.Errorf("wrapped sample = %+v", got)
	}

	raw := NewStride(2, false).OnSample(x)
	if raw.Theta != x.Theta {
		t.Errorf("unwrapped sample changed theta: %v", raw.Theta)
	}
}

func TestTimeGridTargets(t *testing.T) {
	g := NewTimeGrid(0, 2, 1.0, true)

	if g.WarmupEnd() != 2.0 {
		t.Errorf("warmup end = %v, want 2", g.WarmupEnd())
	}
	for n := 0; n < 5; n++ {
		want := 3.0 + float64(n)
		if got := g.TargetTime(); got != want {
			t.Errorf("target %d = %v, want %v", n, got, want)
		}
		g.Advance()
	}
}

func TestTimeGridDoesNotDrift(t *testing.T) {
	period := 2 * math.Pi / 0.6667
	g := NewTimeGrid(0.25, 10, period, false)

	for i := 0; i < 100000; i++ {
		g.Advance()
	}

	want := 0.25 + float64(10+1+100000)*period
	if g.TargetTime() != want {
		t.Errorf("target after 1e5 periods = %.17g, want %.17g", g.TargetTime(), want)
	}
}

func TestTimeGridNegativeWarmup(t *testing.T) {
	g := NewTimeGrid(1, -3, 2, false)
	if g.TargetTime() != 3 {
		t.Errorf("expected first target 3, got %v", g.TargetTime())
	}
}
