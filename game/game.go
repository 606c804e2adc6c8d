// Package game is the showcase shell: it owns the window-facing loop, wires
// input into the scene, and draws the scene with its overlays.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/renderer"
	"github.com/pthm-cable/glass/scene"
	"github.com/pthm-cable/glass/telemetry"
	"github.com/pthm-cable/glass/ui"
	"github.com/pthm-cable/glass/viewport"
)

// headlessDT is the fixed frame interval without a window.
const headlessDT = time.Second / 60

// Options configures a Game.
type Options struct {
	OutputDir     string // CSV output; overrides telemetry.output_dir
	LogStats      bool   // log every telemetry window via slog
	Headless      bool   // no raylib calls
	ReducedMotion bool   // start with reduced motion on
	Autopilot     bool   // drive the pointer along a scripted tour
}

// Game holds the showcase state.
type Game struct {
	cfg   *config.Config
	vp    *viewport.Viewport
	pref  *motion.Preference
	gate  *motion.Gate
	scene *scene.Scene

	// Rendering (nil when headless)
	backdrop      *renderer.Backdrop
	sceneRenderer *renderer.Scene
	hud           *ui.HUD
	inspector     *ui.Inspector
	controls      *ui.ControlsPanel
	perfPanel     *ui.PerfPanel
	overlays      *ui.OverlayRegistry

	// Telemetry
	perf       *telemetry.PerfCollector
	output     *telemetry.OutputManager
	logStats   bool
	lastSample telemetry.FrameSample

	// State
	headless  bool
	clock     time.Duration // frame timestamp fed to the loop
	frames    uint64
	paused    bool
	timeScale float32
	autopilot *Autopilot
	piloting  bool
	pointer   [2]float64

	screenWidth, screenHeight float32
}

// NewGameWithOptions builds the scene from the global config and mounts it.
// In graphical mode the raylib window must already exist.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	g := &Game{
		cfg:          cfg,
		vp:           viewport.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height)),
		pref:         motion.NewPreference(opts.ReducedMotion || cfg.Motion.ReducedMotion),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.Window),
		logStats:     opts.LogStats,
		headless:     opts.Headless,
		timeScale:    1,
		piloting:     opts.Autopilot || opts.Headless,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}
	g.gate = motion.NewGate(motion.HostEnvironment(g.pref), cfg.MotionSettings())

	switch {
	case cfg.Screen.DevicePixelRatio > 0:
		g.vp.SetDevicePixelRatio(cfg.Screen.DevicePixelRatio)
	case !g.headless:
		g.vp.SetDevicePixelRatio(float64(rl.GetWindowScaleDPI().X))
	}

	outputDir := cfg.Telemetry.OutputDir
	if opts.OutputDir != "" {
		outputDir = opts.OutputDir
	}
	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return nil, err
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	sceneOpts := scene.Options{
		Config:     cfg,
		Viewport:   g.vp,
		Preference: g.pref,
		OnWindow:   g.onWindow,
	}
	if !g.headless {
		g.backdrop = renderer.NewBackdrop(g.vp, 11, 15, 30)
		g.backdrop.Init()
		sceneOpts.Backdrop = g.backdrop
	}
	g.scene, err = scene.New(sceneOpts)
	if err != nil {
		g.output.Close()
		return nil, fmt.Errorf("building scene: %w", err)
	}

	g.autopilot = g.newAutopilot()

	if !g.headless {
		g.initUI()
	}

	g.scene.Mount()
	slog.Info("scene mounted",
		"widgets", g.scene.Len(),
		"reduced_motion", g.pref.Matches(),
		"low_power", g.gate.LowPower(),
		"dpr", g.vp.DevicePixelRatio(),
	)
	return g, nil
}

func (g *Game) newAutopilot() *Autopilot {
	views := g.scene.Views()
	rects := make([]viewport.Rect, len(views))
	for i, v := range views {
		rects[i] = v.Bounds
	}
	return NewAutopilot(rects, [2]float64{8, 8}, 2*time.Second)
}

func (g *Game) initUI() {
	g.sceneRenderer = renderer.NewScene()
	g.sceneRenderer.Init(g.scene.Views())

	w := int32(g.screenWidth)
	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.inspector = ui.NewInspector(w-250, 10, 240, g.cfg.Tilt.MaxTilt, g.cfg.Parallax.Max)
	g.controls = ui.NewControlsPanel(10, 85, 200)
	g.perfPanel = ui.NewPerfPanel(w-230, int32(g.screenHeight)-130)
}

// Update handles input and advances the scene by one window frame.
func (g *Game) Update() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseScene)
	g.updatePointer()

	g.perf.StartPhase(telemetry.PhaseFrames)
	g.step(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))
}

// UpdateHeadless advances one fixed frame without a window.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseScene)
	g.updatePointer()

	g.perf.StartPhase(telemetry.PhaseFrames)
	g.step(headlessDT)

	g.perf.EndFrame()
	g.perf.RecordPresent()
}

// step advances the frame clock by dt scaled and runs one loop frame.
func (g *Game) step(dt time.Duration) {
	if g.paused {
		return
	}
	g.clock += time.Duration(float64(dt) * float64(g.timeScale))
	g.frames++
	g.lastSample = g.scene.Step(g.clock)
}

// updatePointer dispatches the autopilot position, or the mouse when it moved.
func (g *Game) updatePointer() {
	var x, y float64
	switch {
	case g.piloting:
		x, y = g.autopilot.Pointer(g.clock)
	case g.headless:
		return
	default:
		m := rl.GetMousePosition()
		x, y = float64(m.X), float64(m.Y)
	}
	if x == g.pointer[0] && y == g.pointer[1] {
		return
	}
	g.pointer = [2]float64{x, y}
	g.vp.DispatchPointerMove(x, y)
}

// ToggleReducedMotion flips the reduced-motion preference.
func (g *Game) ToggleReducedMotion() {
	g.pref.Toggle()
	slog.Info("reduced motion changed", "reduced", g.pref.Matches())
}

// ToggleMount unmounts or remounts the scene.
func (g *Game) ToggleMount() {
	if g.scene.Mounted() {
		g.scene.Unmount()
	} else {
		g.scene.Mount()
	}
	slog.Info("scene mount changed", "mounted", g.scene.Mounted())
}

// Scene exposes the widget scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Frames returns the number of loop frames run.
func (g *Game) Frames() uint64 {
	return g.frames
}

// LastSample returns the most recent frame sample.
func (g *Game) LastSample() telemetry.FrameSample {
	return g.lastSample
}

// Unload releases resources. The scene is unmounted first so telemetry sees
// a clean shutdown.
func (g *Game) Unload() {
	g.scene.Unmount()
	g.gate.Close()
	if g.sceneRenderer != nil {
		g.sceneRenderer.Unload()
	}
	if g.backdrop != nil {
		g.backdrop.Unload()
	}
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
