package game

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/telemetry"
	"github.com/pthm-cable/glass/viewport"
)

func TestAutopilotTour(t *testing.T) {
	rects := []viewport.Rect{
		{X: 0, Y: 0, W: 100, H: 100},
		{X: 200, Y: 0, W: 100, H: 100},
	}
	leg := 2 * time.Second
	a := NewAutopilot(rects, [2]float64{400, 400}, leg)

	if a.Lap() != 3*leg {
		t.Fatalf("Lap = %v, want %v", a.Lap(), 3*leg)
	}

	tests := []struct {
		name string
		at   time.Duration
		x, y float64
	}{
		{"start", 0, 50, 50},
		{"dwell", leg / 4, 50, 50},
		{"halfway", leg * 3 / 4, 150, 50},
		{"second", leg, 250, 50},
		{"rest", 2 * leg, 400, 400},
		{"loops", a.Lap(), 50, 50},
		{"negative", -time.Second, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := a.Pointer(tt.at)
			if math.Abs(x-tt.x) > 1e-9 || math.Abs(y-tt.y) > 1e-9 {
				t.Errorf("Pointer(%v) = (%f, %f), want (%f, %f)", tt.at, x, y, tt.x, tt.y)
			}
		})
	}
}

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	config.MustInit("")
	opts.Headless = true
	g, err := NewGameWithOptions(opts)
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	return g
}

func TestHeadlessTourVisitsEveryWidget(t *testing.T) {
	dir := t.TempDir()
	g := newHeadless(t, Options{OutputDir: dir})

	frames := int(g.autopilot.Lap() / headlessDT)
	visited := make(map[string]bool)
	for i := 0; i < frames; i++ {
		g.UpdateHeadless()
		if v, ok := g.Scene().Hovered(); ok {
			visited[v.Name] = true
		}
	}
	g.Unload()

	if g.Frames() != uint64(frames) {
		t.Errorf("Frames = %d, want %d", g.Frames(), frames)
	}
	for _, w := range config.Cfg().Widgets {
		if !visited[w.Name] {
			t.Errorf("widget %q never hovered", w.Name)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var windows []telemetry.WindowStats
	if err := gocsv.UnmarshalBytes(data, &windows); err != nil {
		t.Fatal(err)
	}
	if want := frames / config.Cfg().Telemetry.Window; len(windows) != want {
		t.Fatalf("windows = %d, want %d", len(windows), want)
	}
	for i, w := range windows {
		if !w.Healthy() {
			t.Errorf("window %d unhealthy: %+v", i, w)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestHeadlessReducedMotion(t *testing.T) {
	g := newHeadless(t, Options{ReducedMotion: true})
	defer g.Unload()

	for i := 0; i < 60; i++ {
		g.UpdateHeadless()
	}
	if got := g.LastSample().Callbacks; got != 0 {
		t.Errorf("callbacks under reduced motion = %d", got)
	}

	g.ToggleReducedMotion()
	g.UpdateHeadless()
	if got := g.LastSample().Callbacks; got == 0 {
		t.Error("turning reduced motion off should resume animation")
	}
}

func TestHeadlessToggleMount(t *testing.T) {
	g := newHeadless(t, Options{})
	defer g.Unload()

	for i := 0; i < 30; i++ {
		g.UpdateHeadless()
	}
	g.ToggleMount()
	if g.Scene().Mounted() {
		t.Fatal("scene still mounted")
	}
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	s := g.LastSample()
	if s.Callbacks != 0 || s.Pending != 0 || len(s.Leaked) != 0 {
		t.Errorf("unmounted scene still animating: %+v", s)
	}

	g.ToggleMount()
	g.UpdateHeadless()
	if g.LastSample().Callbacks == 0 {
		t.Error("remount should resume animation")
	}
}

func TestPausedGameHoldsClock(t *testing.T) {
	g := newHeadless(t, Options{})
	defer g.Unload()

	g.UpdateHeadless()
	g.paused = true
	clock := g.clock
	for i := 0; i < 5; i++ {
		g.UpdateHeadless()
	}
	if g.clock != clock || g.Frames() != 1 {
		t.Errorf("paused game advanced: clock %v -> %v, frames %d", clock, g.clock, g.Frames())
	}
}
