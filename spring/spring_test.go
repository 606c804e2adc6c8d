package spring

import (
	"math"
	"testing"
)

const dt = 1.0 / 60.0

func TestDampingRatio(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want float64
	}{
		{"default", DefaultConfig(), 25 / (2 * math.Sqrt(300))},
		{"critical", Critical(300), 1},
		{"zero mass treated as 1", Config{Stiffness: 100, Damping: 20}, 1},
		{"no stiffness", Config{}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.DampingRatio()
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DampingRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOvershoot(t *testing.T) {
	if o := Critical(300).Overshoot(); o != 0 {
		t.Errorf("critical spring should not overshoot, got %v", o)
	}
	o := DefaultConfig().Overshoot()
	if o <= 0 || o >= 0.1 {
		t.Errorf("expected small positive overshoot for default config, got %v", o)
	}
}

func TestCriticalAxisConvergesMonotonically(t *testing.T) {
	a := NewAxis(Critical(300), 0)
	a.SetTarget(12)

	prev := a.Value
	for i := 0; i < 120; i++ {
		a.Tick(dt)
		if a.Value < prev-1e-9 {
			t.Fatalf("frame %d: value went backwards (%f -> %f)", i, prev, a.Value)
		}
		if a.Value > 12+1e-9 {
			t.Fatalf("frame %d: critical spring overshot target: %f", i, a.Value)
		}
		prev = a.Value
	}
	if !a.Settled(1e-3) {
		t.Errorf("expected axis to settle within 2s, value=%f velocity=%f", a.Value, a.Velocity)
	}
}

func TestUnderdampedOvershootBounded(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAxis(cfg, 0)
	a.SetTarget(10)

	limit := 10 * (1 + cfg.Overshoot() + 1e-6)
	for i := 0; i < 180; i++ {
		a.Tick(dt)
		if a.Value > limit {
			t.Fatalf("frame %d: value %f exceeds overshoot bound %f", i, a.Value, limit)
		}
	}
	if !a.Settled(1e-3) {
		t.Errorf("expected axis to settle, value=%f", a.Value)
	}
}

func TestRestAxisStaysPut(t *testing.T) {
	a := NewAxis(DefaultConfig(), 1)
	for i := 0; i < 600; i++ {
		a.Tick(dt)
	}
	if a.Value != 1 || a.Velocity != 0 {
		t.Errorf("rest axis drifted to %f (v=%f)", a.Value, a.Velocity)
	}
}

func TestTickIgnoresNonPositiveDT(t *testing.T) {
	a := NewAxis(DefaultConfig(), 0)
	a.SetTarget(5)
	a.Tick(0)
	a.Tick(-1)
	if a.Value != 0 {
		t.Errorf("expected no movement, got %f", a.Value)
	}
}

func TestSnap(t *testing.T) {
	a := NewAxis(DefaultConfig(), 0)
	a.SetTarget(5)
	a.Tick(dt)
	a.Snap(0)
	if a.Value != 0 || a.Target != 0 || a.Velocity != 0 {
		t.Errorf("expected snapped rest state, got %+v", a)
	}
}
