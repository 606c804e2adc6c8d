package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/telemetry"
	"github.com/pthm-cable/glass/ui"
)

var (
	boundsColor  = rl.Color{R: 250, G: 204, B: 21, A: 160}
	hoveredColor = rl.Color{R: 74, G: 222, B: 128, A: 220}
)

const controlsLegend = "[R] reduced motion  [M] mount  [A] autopilot  [Space] pause  [H/I/Tab/F/B/P] overlays  [F11] fullscreen"

// Draw renders the frame and closes the perf sample begun in Update.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.backdrop.Draw()
	views := g.scene.Views()
	g.sceneRenderer.Draw(views)

	if g.overlays.IsEnabled(ui.OverlayBounds) {
		for _, v := range views {
			col := boundsColor
			if v.Hovered {
				col = hoveredColor
			}
			rl.DrawRectangleLines(int32(v.Bounds.X), int32(v.Bounds.Y), int32(v.Bounds.W), int32(v.Bounds.H), col)
		}
	}
	if g.overlays.IsEnabled(ui.OverlayPointer) {
		x, y := int32(g.pointer[0]), int32(g.pointer[1])
		rl.DrawLine(x-8, y, x+8, y, rl.White)
		rl.DrawLine(x, y-8, x, y+8, rl.White)
	}

	g.drawUI()

	rl.EndDrawing()

	g.perf.EndFrame()
	g.perf.RecordPresent()
}

func (g *Game) drawUI() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:         "Glass",
			Widgets:       g.scene.Len(),
			Frame:         g.frames,
			FPS:           rl.GetFPS(),
			Pending:       g.lastSample.Pending,
			Callbacks:     g.lastSample.Callbacks,
			ReducedMotion: g.pref.Matches(),
			LowPower:      g.gate.LowPower(),
			Mounted:       g.scene.Mounted(),
			Paused:        g.paused,
		})
	}
	if g.overlays.IsEnabled(ui.OverlayInspector) {
		if v, ok := g.scene.Hovered(); ok {
			g.inspector.Draw(v)
		}
	}
	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perf.Stats())
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		action := g.controls.Draw(ui.ControlsState{
			ReducedMotion: g.pref.Matches(),
			Mounted:       g.scene.Mounted(),
			Paused:        g.paused,
			Autopilot:     g.piloting,
			TimeScale:     g.timeScale,
		}, g.overlays)
		g.applyControls(action)
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}
