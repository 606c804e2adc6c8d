package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/scene"
)

// heroTint is the parallax banner's accent colour.
var heroTint = rl.Color{R: 129, G: 140, B: 248, A: 255}

// ParallaxRenderer draws parallax layers translated by their offset.
type ParallaxRenderer struct{}

// NewParallaxRenderer creates a parallax renderer.
func NewParallaxRenderer() *ParallaxRenderer {
	return &ParallaxRenderer{}
}

// Draw renders the banner shifted by the current offset. A faint ghost at
// the rest position keeps the displacement visible.
func (r *ParallaxRenderer) Draw(v scene.View) {
	b := v.Bounds
	rest := rl.Rectangle{X: float32(b.X), Y: float32(b.Y), Width: float32(b.W), Height: float32(b.H)}
	rl.DrawRectangleLinesEx(rest, 1, rl.Fade(glassBorder, 0.4))

	moved := rest
	moved.X += float32(v.Parallax.DX)
	moved.Y += float32(v.Parallax.DY)
	rl.DrawRectangleGradientH(int32(moved.X), int32(moved.Y), int32(moved.Width), int32(moved.Height),
		rl.Fade(heroTint, 0.35), rl.Fade(heroTint, 0.08))
	rl.DrawRectangleLinesEx(moved, 1.5, glassBorder)

	if v.Caption != "" {
		const size = 36
		width := rl.MeasureText(v.Caption, size)
		cx := int32(moved.X + moved.Width/2)
		cy := int32(moved.Y + moved.Height/2)
		rl.DrawText(v.Caption, cx-width/2, cy-size/2, size, captionText)
	}
}
