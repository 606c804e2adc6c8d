package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/ambient"
	"github.com/pthm-cable/glass/viewport"
)

// Backdrop is the ambient field's container: a full-window render texture
// the animator paints into, composited over a base colour each frame.
type Backdrop struct {
	vp        *viewport.Viewport
	canvas    *TextureCanvas
	baseColor rl.Color
}

// NewBackdrop creates a backdrop. Context returns nil until Init runs, so an
// animator started without a window stays idle.
func NewBackdrop(vp *viewport.Viewport, baseR, baseG, baseB uint8) *Backdrop {
	return &Backdrop{
		vp:        vp,
		baseColor: rl.Color{R: baseR, G: baseG, B: baseB, A: 255},
	}
}

// Init allocates GPU resources (must be called after the raylib window is created).
func (b *Backdrop) Init() {
	if b.canvas == nil {
		b.canvas = &TextureCanvas{}
	}
}

// Size implements ambient.Container.
func (b *Backdrop) Size() (float64, float64) {
	return b.vp.Size()
}

// Context implements ambient.Container.
func (b *Backdrop) Context() ambient.Canvas {
	if b.canvas == nil {
		return nil
	}
	return b.canvas
}

// Draw paints the base colour and the ambient texture over the window.
func (b *Backdrop) Draw() {
	w, h := b.vp.Size()
	rl.DrawRectangle(0, 0, int32(w), int32(h), b.baseColor)
	if b.canvas != nil {
		b.canvas.Draw(float32(w), float32(h))
	}
}

// Unload frees resources.
func (b *Backdrop) Unload() {
	if b.canvas != nil {
		b.canvas.Unload()
		b.canvas = nil
	}
}

// TextureCanvas implements ambient.Canvas on a render texture.
type TextureCanvas struct {
	target rl.RenderTexture2D
	w, h   int32
	scale  float32
	loaded bool
}

// Resize reallocates the backing texture. Contents are discarded.
func (c *TextureCanvas) Resize(pxW, pxH int, scale float64) {
	if c.loaded && int32(pxW) == c.w && int32(pxH) == c.h {
		c.scale = float32(scale)
		return
	}
	c.Unload()
	c.w, c.h, c.scale = int32(pxW), int32(pxH), float32(scale)
	if pxW <= 0 || pxH <= 0 {
		return
	}
	c.target = rl.LoadRenderTexture(c.w, c.h)
	rl.SetTextureFilter(c.target.Texture, rl.FilterBilinear)
	c.loaded = true
	c.Clear()
}

// Clear makes the canvas fully transparent.
func (c *TextureCanvas) Clear() {
	if !c.loaded {
		return
	}
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Blank)
	rl.EndTextureMode()
}

// FillRadialGradient paints a white glow fading linearly to transparent at
// radius. Coordinates are CSS pixels.
func (c *TextureCanvas) FillRadialGradient(x, y, radius, alpha float64) {
	if !c.loaded || radius <= 0 || alpha <= 0 {
		return
	}
	inner := rl.Fade(rl.White, float32(alpha))
	outer := rl.Fade(rl.White, 0)

	rl.BeginTextureMode(c.target)
	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DrawCircleGradient(int32(float32(x)*c.scale), int32(float32(y)*c.scale), float32(radius)*c.scale, inner, outer)
	rl.EndBlendMode()
	rl.EndTextureMode()
}

// Draw stretches the texture over a w×h CSS-pixel area.
func (c *TextureCanvas) Draw(w, h float32) {
	if !c.loaded {
		return
	}
	// Render textures are stored upside down; flip with a negative height.
	src := rl.Rectangle{X: 0, Y: float32(c.h), Width: float32(c.w), Height: -float32(c.h)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: w, Height: h}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees the render texture.
func (c *TextureCanvas) Unload() {
	if c.loaded {
		rl.UnloadRenderTexture(c.target)
		c.loaded = false
	}
}
