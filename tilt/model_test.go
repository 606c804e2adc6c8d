package tilt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/glass/spring"
)

const dt = 1.0 / 60.0

func run(m *Model, frames int) {
	for i := 0; i < frames; i++ {
		m.Tick(dt)
	}
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRestInvariant(t *testing.T) {
	m := NewModel(DefaultOptions())
	run(m, 10000)
	if s := m.State(); s != Rest {
		t.Errorf("expected rest pose without interaction, got %+v", s)
	}
	if m.Phase() != Resting {
		t.Errorf("expected resting phase, got %v", m.Phase())
	}
}

func TestEnterAtCenterTargetsZero(t *testing.T) {
	m := NewModel(Options{MaxTilt: 12, ScaleOnHover: 1.03, Spring: spring.DefaultConfig()})
	m.PointerEnter(150, 100, 300, 200)

	target := m.Target()
	if target.RotateX != 0 || target.RotateY != 0 {
		t.Errorf("expected (0, 0) target at centre, got (%f, %f)", target.RotateX, target.RotateY)
	}
	if target.Scale != 1.03 {
		t.Errorf("expected hover scale 1.03, got %f", target.Scale)
	}
}

func TestTopLeftScenario(t *testing.T) {
	m := NewModel(Options{MaxTilt: 12, ScaleOnHover: 1.03, Spring: spring.DefaultConfig()})
	m.PointerEnter(0, 0, 300, 200)
	run(m, 180)

	s := m.State()
	if !near(s.RotateX, 12, 0.01) || !near(s.RotateY, -12, 0.01) {
		t.Errorf("expected rotation to approach (12, -12), got (%f, %f)", s.RotateX, s.RotateY)
	}
	if !near(s.Scale, 1.03, 0.001) {
		t.Errorf("expected scale to approach 1.03, got %f", s.Scale)
	}

	m.PointerLeave()
	if m.Phase() != Resting {
		t.Errorf("expected resting phase after leave")
	}
	// The spring must not jump on leave: the first frame after leave stays close.
	m.Tick(dt)
	if s2 := m.State(); near(s2.RotateX, 0, 0.5) {
		t.Errorf("rotation snapped to rest on leave: %f", s2.RotateX)
	}

	frames := 1
	for !m.AtRest() {
		m.Tick(dt)
		frames++
		if frames > 240 {
			t.Fatalf("rotation did not relax within 4s: %+v", m.State())
		}
	}
}

func TestBoundedRotation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const maxTilt = 10
	for i := 0; i < 50; i++ {
		m := NewModel(Options{MaxTilt: maxTilt, ScaleOnHover: 1.02, Spring: spring.DefaultConfig()})
		w, h := 50+rng.Float64()*500, 50+rng.Float64()*500
		m.PointerEnter(rng.Float64()*w, rng.Float64()*h, w, h)
		for j := 0; j < 20; j++ {
			m.PointerMove(rng.Float64()*w, rng.Float64()*h, w, h)
			run(m, 3)
		}
		run(m, 240)
		s := m.State()
		if math.Abs(s.RotateX) > maxTilt+1e-6 || math.Abs(s.RotateY) > maxTilt+1e-6 {
			t.Fatalf("settled rotation out of bounds: %+v", s)
		}
	}
}

func TestTargetsClampedOutsideBox(t *testing.T) {
	rx, ry := Angles(-500, 900, 100, 100, 8)
	if rx != -8 || ry != -8 {
		t.Errorf("expected clamped (-8, -8), got (%f, %f)", rx, ry)
	}
}

func TestContinuityCriticalSpring(t *testing.T) {
	m := NewModel(Options{MaxTilt: 15, ScaleOnHover: 1.02, Spring: spring.Critical(300)})
	m.PointerEnter(300, 0, 300, 300) // top-right: target (15, 15)

	prev := m.State()
	for i := 0; i < 120; i++ {
		m.Tick(dt)
		s := m.State()
		if s.RotateX < prev.RotateX-1e-9 || s.RotateY < prev.RotateY-1e-9 {
			t.Fatalf("frame %d: non-monotonic convergence %+v -> %+v", i, prev, s)
		}
		if s.RotateX > 15+1e-9 || s.RotateY > 15+1e-9 {
			t.Fatalf("frame %d: critical spring overshot: %+v", i, s)
		}
		prev = s
	}

	// Second target: moving to the centre must converge monotonically downwards.
	m.PointerMove(150, 150, 300, 300)
	prev = m.State()
	for i := 0; i < 120; i++ {
		m.Tick(dt)
		s := m.State()
		if s.RotateX > prev.RotateX+1e-9 || s.RotateX < -1e-9 {
			t.Fatalf("frame %d: non-monotonic return %f -> %f", i, prev.RotateX, s.RotateX)
		}
		prev = s
	}
}

func TestContinuityPerFrameStepBounded(t *testing.T) {
	cfg := spring.DefaultConfig()
	m := NewModel(Options{MaxTilt: 12, ScaleOnHover: 1.02, Spring: cfg})
	m.PointerEnter(0, 0, 200, 200)

	// Peak velocity of a step response from rest stays below ω·Δ.
	maxStep := cfg.AngularFrequency() * 12 * dt
	prev := m.State()
	for i := 0; i < 120; i++ {
		m.Tick(dt)
		s := m.State()
		if math.Abs(s.RotateX-prev.RotateX) > maxStep {
			t.Fatalf("frame %d: jump %f exceeds %f", i, math.Abs(s.RotateX-prev.RotateX), maxStep)
		}
		prev = s
	}
}

func TestMoveWithoutHoverIgnored(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.PointerMove(0, 0, 100, 100)
	if m.Target() != Rest {
		t.Errorf("move without hover changed target: %+v", m.Target())
	}

	m.PointerEnter(50, 50, 100, 100)
	m.PointerLeave()
	m.PointerMove(0, 0, 100, 100)
	if m.Target() != Rest {
		t.Errorf("move after leave changed target: %+v", m.Target())
	}
}

func TestReducedMotionSuppressesTargets(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.SetReducedMotion(true)
	m.PointerEnter(0, 0, 100, 100)
	m.PointerMove(100, 100, 100, 100)
	run(m, 60)
	if m.State() != Rest || m.Target() != Rest {
		t.Errorf("reduced motion should hold rest, got state %+v target %+v", m.State(), m.Target())
	}
}

func TestReducedMotionDropsToRest(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.PointerEnter(0, 0, 100, 100)
	run(m, 10)
	m.SetReducedMotion(true)
	if m.State() != Rest {
		t.Errorf("expected rest pose after enabling reduced motion, got %+v", m.State())
	}
}

func TestZeroSizedBox(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.PointerEnter(10, 10, 0, 0)
	m.PointerMove(5, 5, 0, 0)
	run(m, 30)
	s := m.State()
	for _, v := range []float64{s.RotateX, s.RotateY, s.Scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("collapsed box produced non-finite state %+v", s)
		}
	}
	if tg := m.Target(); tg.RotateX != 0 || tg.RotateY != 0 {
		t.Errorf("expected zero rotation target for collapsed box, got %+v", tg)
	}
}

func TestPhaseString(t *testing.T) {
	if Resting.String() != "resting" || Tracking.String() != "tracking" {
		t.Errorf("unexpected phase names %q %q", Resting, Tracking)
	}
}
