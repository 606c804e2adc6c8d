package frame

import (
	"math"
	"testing"
	"time"
)

func TestStepRunsPendingOnce(t *testing.T) {
	l := NewLoop()
	calls := 0
	l.RequestFrame(func(time.Duration) { calls++ })

	if n := l.Step(16 * time.Millisecond); n != 1 {
		t.Errorf("expected 1 callback, got %d", n)
	}
	if n := l.Step(32 * time.Millisecond); n != 0 {
		t.Errorf("expected no callbacks on second step, got %d", n)
	}
	if calls != 1 {
		t.Errorf("expected callback to run once, ran %d times", calls)
	}
}

func TestRequestDuringStepDefersToNextFrame(t *testing.T) {
	l := NewLoop()
	var frames []time.Duration
	var tick Callback
	tick = func(now time.Duration) {
		frames = append(frames, now)
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	for i := 1; i <= 3; i++ {
		l.Step(time.Duration(i) * time.Millisecond)
		if l.Pending() != 1 {
			t.Fatalf("step %d: expected exactly one pending request, got %d", i, l.Pending())
		}
	}
	if len(frames) != 3 {
		t.Errorf("expected 3 frames, got %d", len(frames))
	}
}

func TestCancelFrame(t *testing.T) {
	l := NewLoop()
	ran := false
	h := l.RequestFrame(func(time.Duration) { ran = true })
	l.CancelFrame(h)
	l.CancelFrame(h) // second cancel is a no-op
	l.CancelFrame(Handle(999))

	l.Step(time.Millisecond)
	if ran {
		t.Error("cancelled callback ran")
	}
	if l.Requested() != 1 {
		t.Errorf("expected 1 lifetime request, got %d", l.Requested())
	}
}

func TestCancelFromSiblingCallback(t *testing.T) {
	l := NewLoop()
	var second Handle
	ran := false
	l.RequestFrame(func(time.Duration) { l.CancelFrame(second) })
	second = l.RequestFrame(func(time.Duration) { ran = true })

	if n := l.Step(time.Millisecond); n != 1 {
		t.Errorf("expected 1 callback to run, got %d", n)
	}
	if ran {
		t.Error("callback cancelled mid-step still ran")
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name      string
		prev, now time.Duration
		want      float64
	}{
		{"first frame", 0, 100 * time.Millisecond, 1.0 / 60.0},
		{"normal", 100 * time.Millisecond, 116 * time.Millisecond, 0.016},
		{"clamped", time.Second, 3 * time.Second, 0.1},
		{"non-monotonic", time.Second, time.Second, 1.0 / 60.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(tt.prev, tt.now, 0.1)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Delta(%v, %v) = %v, want %v", tt.prev, tt.now, got, tt.want)
			}
		})
	}
}
