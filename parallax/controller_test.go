package parallax

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/viewport"
)

func fixedBounds(r viewport.Rect) func() viewport.Rect {
	return func() viewport.Rect { return r }
}

func TestCompute(t *testing.T) {
	bounds := viewport.Rect{X: 100, Y: 100, W: 200, H: 100}
	tests := []struct {
		name   string
		px, py float64
		want   Offset
	}{
		{"centre", 200, 150, Offset{0, 0}},
		{"right edge", 300, 150, Offset{5, 0}},
		{"top-left corner", 100, 100, Offset{-5, -5}},
		{"far outside clamps", 5000, -5000, Offset{10, -10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.px, tt.py, bounds, 10)
			if math.Abs(got.DX-tt.want.DX) > 1e-9 || math.Abs(got.DY-tt.want.DY) > 1e-9 {
				t.Errorf("Compute(%v, %v) = %+v, want %+v", tt.px, tt.py, got, tt.want)
			}
		})
	}
}

func TestComputeCollapsedBox(t *testing.T) {
	got := Compute(50, 50, viewport.Rect{X: 10, Y: 10}, 18)
	if got.DX != 0 || got.DY != 0 {
		t.Errorf("expected zero offset for collapsed box, got %+v", got)
	}
}

func TestCoalescesToOneCommitPerFrame(t *testing.T) {
	vp := viewport.New(800, 600)
	loop := frame.NewLoop()
	c := NewController(vp, loop, motion.Environment{}, motion.DefaultConfig(), fixedBounds(viewport.Rect{X: 0, Y: 0, W: 800, H: 600}), 18)
	var published []Offset
	c.OnUpdate(func(o Offset) { published = append(published, o) })
	c.Start()
	defer c.Stop()

	for i := 0; i < 10; i++ {
		vp.DispatchPointerMove(float64(400+i*40), 300)
	}
	if loop.Pending() != 1 {
		t.Fatalf("expected a single pending frame, got %d", loop.Pending())
	}

	loop.Step(16 * time.Millisecond)
	if len(published) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(published))
	}
	// The committed value is the latest event: x=760 -> (360/800)*18.
	if math.Abs(published[0].DX-8.1) > 1e-9 {
		t.Errorf("expected latest offset dx=8.1, got %f", published[0].DX)
	}

	loop.Step(32 * time.Millisecond)
	if c.Commits() != 1 {
		t.Errorf("idle frame should not commit, got %d commits", c.Commits())
	}
}

func TestReducedMotionNoListenerNoFrames(t *testing.T) {
	vp := viewport.New(800, 600)
	loop := frame.NewLoop()
	env := motion.Environment{ReducedMotion: motion.NewPreference(true)}
	c := NewController(vp, loop, env, motion.DefaultConfig(), fixedBounds(viewport.Rect{W: 100, H: 100}), 18)
	c.Start()

	vp.DispatchPointerMove(10, 10)
	if p, _ := vp.Listeners(); p != 0 {
		t.Errorf("expected no pointer listener under reduced motion, got %d", p)
	}
	if loop.Requested() != 0 {
		t.Errorf("expected no frames requested, got %d", loop.Requested())
	}
	if c.Offset() != (Offset{}) {
		t.Errorf("expected zero offset, got %+v", c.Offset())
	}
	c.Stop()
}

func TestStopCancelsPendingFrame(t *testing.T) {
	vp := viewport.New(800, 600)
	loop := frame.NewLoop()
	pref := motion.NewPreference(false)
	c := NewController(vp, loop, motion.Environment{ReducedMotion: pref}, motion.DefaultConfig(), fixedBounds(viewport.Rect{W: 800, H: 600}), 18)
	c.Start()
	vp.DispatchPointerMove(0, 0)

	c.Stop()
	c.Stop()
	if loop.Pending() != 0 {
		t.Errorf("expected pending frame to be cancelled, got %d", loop.Pending())
	}
	if p, _ := vp.Listeners(); p != 0 {
		t.Errorf("expected listener removal, got %d", p)
	}
	if pref.Listeners() != 0 {
		t.Errorf("expected media query unsubscribe, got %d", pref.Listeners())
	}
	loop.Step(time.Millisecond)
	if c.Commits() != 0 {
		t.Errorf("stopped controller committed an offset")
	}
}

func TestLiveReducedMotionDetachesAndResumes(t *testing.T) {
	vp := viewport.New(800, 600)
	loop := frame.NewLoop()
	pref := motion.NewPreference(false)
	c := NewController(vp, loop, motion.Environment{ReducedMotion: pref}, motion.DefaultConfig(), fixedBounds(viewport.Rect{W: 800, H: 600}), 18)
	var published []Offset
	c.OnUpdate(func(o Offset) { published = append(published, o) })
	c.Start()
	defer c.Stop()

	vp.DispatchPointerMove(0, 0)
	loop.Step(16 * time.Millisecond)
	if c.Offset() == (Offset{}) {
		t.Fatal("expected a committed offset before reduced motion")
	}

	// A move left pending when the preference flips must not commit.
	vp.DispatchPointerMove(800, 600)
	pref.Set(true)
	requested := loop.Requested()
	vp.DispatchPointerMove(100, 100)
	loop.Step(32 * time.Millisecond)

	if p, _ := vp.Listeners(); p != 0 {
		t.Errorf("expected no pointer listener under reduced motion, got %d", p)
	}
	if loop.Requested() != requested {
		t.Errorf("frames requested under reduced motion: %d", loop.Requested()-requested)
	}
	if loop.Pending() != 0 {
		t.Errorf("expected pending frame cancelled, got %d", loop.Pending())
	}
	if c.Offset() != (Offset{}) {
		t.Errorf("expected rest offset under reduced motion, got %+v", c.Offset())
	}
	if last := published[len(published)-1]; last != (Offset{}) {
		t.Errorf("expected rest offset published, got %+v", last)
	}

	pref.Set(false)
	if p, _ := vp.Listeners(); p != 1 {
		t.Fatalf("expected listener re-attached, got %d", p)
	}
	commits := c.Commits()
	vp.DispatchPointerMove(0, 0)
	loop.Step(48 * time.Millisecond)
	if c.Commits() != commits+1 || c.Offset() == (Offset{}) {
		t.Errorf("expected a fresh commit after resume, got %d commits, offset %+v", c.Commits()-commits, c.Offset())
	}
}

func TestStartUnderReducedMotionResumesWhenCleared(t *testing.T) {
	vp := viewport.New(800, 600)
	loop := frame.NewLoop()
	pref := motion.NewPreference(true)
	c := NewController(vp, loop, motion.Environment{ReducedMotion: pref}, motion.DefaultConfig(), fixedBounds(viewport.Rect{W: 800, H: 600}), 18)
	c.Start()
	defer c.Stop()

	pref.Set(false)
	vp.DispatchPointerMove(0, 0)
	loop.Step(16 * time.Millisecond)
	if math.Abs(c.Offset().DX+9) > 1e-9 || math.Abs(c.Offset().DY+9) > 1e-9 {
		t.Errorf("offset = %+v, want {-9 -9}", c.Offset())
	}
}
