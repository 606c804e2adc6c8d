package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/ui"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.ToggleReducedMotion()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		g.ToggleMount()
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.piloting = !g.piloting
	}

	for _, desc := range g.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.overlays.Toggle(desc.ID)
		}
	}
}

// applyControls acts on the controls panel's buttons.
func (g *Game) applyControls(a ui.ControlsAction) {
	if a.ToggleReducedMotion {
		g.ToggleReducedMotion()
	}
	if a.ToggleMount {
		g.ToggleMount()
	}
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.ToggleAutopilot {
		g.piloting = !g.piloting
	}
	g.timeScale = a.TimeScale
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.vp.Resize(float64(w), float64(h))
	g.inspector.SetPosition(int32(w)-250, 10)
	g.perfPanel.SetPosition(int32(w)-230, int32(h)-130)
}
