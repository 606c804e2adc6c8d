package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/scene"
	"github.com/pthm-cable/glass/surface"
	"github.com/pthm-cable/glass/viewport"
)

// streakWidth is the highlight band width as a fraction of the panel width.
const streakWidth = 0.3

// Glass colours.
var (
	glassFill   = rl.Color{R: 255, G: 255, B: 255, A: 28}
	glassBorder = rl.Color{R: 255, G: 255, B: 255, A: 70}
	captionText = rl.Color{R: 235, G: 240, B: 255, A: 230}
)

// quad is four screen-space points, clockwise from the top-left.
type quad [4]rl.Vector2

// project maps box-relative (x, y) through t and offsets by the box origin.
func project(t surface.Transform, b viewport.Rect, x, y float64) rl.Vector2 {
	px, py := t.Project(x, y, b.W, b.H)
	return rl.Vector2{X: float32(b.X + px), Y: float32(b.Y + py)}
}

func projectQuad(t surface.Transform, b viewport.Rect) quad {
	c := t.Corners(b.W, b.H)
	var q quad
	for i := range c {
		q[i] = rl.Vector2{X: float32(b.X + c[i][0]), Y: float32(b.Y + c[i][1])}
	}
	return q
}

// fill draws a solid quad as two triangles.
func (q quad) fill(col rl.Color) {
	// raylib wants counter-clockwise winding in screen space.
	rl.DrawTriangle(q[0], q[3], q[2], col)
	rl.DrawTriangle(q[0], q[2], q[1], col)
}

func (q quad) outline(thick float32, col rl.Color) {
	for i := range q {
		rl.DrawLineEx(q[i], q[(i+1)%4], thick, col)
	}
}

// gradientQuad draws a quad with per-corner colours.
func gradientQuad(q quad, cols [4]rl.Color) {
	rl.Begin(rl.Quads)
	for _, i := range [4]int{0, 3, 2, 1} {
		rl.Color4ub(cols[i].R, cols[i].G, cols[i].B, cols[i].A)
		rl.Vertex2f(q[i].X, q[i].Y)
	}
	rl.End()
}

// texturedQuad maps the whole of tex onto q.
func texturedQuad(tex rl.Texture2D, q quad, tint rl.Color) {
	uv := [4]rl.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	rl.SetTexture(tex.ID)
	rl.Begin(rl.Quads)
	rl.Color4ub(tint.R, tint.G, tint.B, tint.A)
	for _, i := range [4]int{0, 3, 2, 1} {
		rl.TexCoord2f(uv[i].X, uv[i].Y)
		rl.Vertex2f(q[i].X, q[i].Y)
	}
	rl.End()
	rl.SetTexture(0)
}

// drawCaption centres text on the projected box centre at depth.
func drawCaption(t surface.Transform, b viewport.Rect, text string, size int32) {
	if text == "" {
		return
	}
	c := project(t, b, b.W/2, b.H/2)
	scaled := int32(math.Round(float64(size) * t.Scale))
	width := rl.MeasureText(text, scaled)
	rl.DrawText(text, int32(c.X)-width/2, int32(c.Y)-scaled/2, scaled, captionText)
}

// TiltRenderer draws shimmer panels.
type TiltRenderer struct{}

// NewTiltRenderer creates a tilt renderer.
func NewTiltRenderer() *TiltRenderer {
	return &TiltRenderer{}
}

// Draw renders one shimmer panel: glass body, sweeping streak, lifted caption.
func (r *TiltRenderer) Draw(v scene.View) {
	st := v.Tilt
	body := projectQuad(st.Transform, v.Bounds)
	body.fill(glassFill)

	r.drawStreak(v, st)

	body.outline(1.5, glassBorder)
	drawCaption(st.Transform.AtDepth(st.ContentDepth), v.Bounds, v.Caption, 28)
}

func (r *TiltRenderer) drawStreak(v scene.View, st surface.TiltRender) {
	if st.Streak.Opacity <= 0 {
		return
	}
	b := v.Bounds
	centre := st.Streak.Offset * b.W
	half := streakWidth * b.W / 2
	left := math.Max(0, centre-half)
	mid := math.Min(b.W, math.Max(0, centre))
	right := math.Min(b.W, centre+half)
	if right <= 0 || left >= b.W {
		return
	}

	// Linear falloff from the band centre, evaluated at the clipped edges.
	alpha := func(x float64) rl.Color {
		a := 1 - math.Abs(x-centre)/half
		return rl.Fade(rl.White, float32(st.Streak.Opacity*math.Max(0, a)))
	}

	t := st.Transform
	for _, span := range [2][2]float64{{left, mid}, {mid, right}} {
		x0, x1 := span[0], span[1]
		if x1 <= x0 {
			continue
		}
		q := quad{project(t, b, x0, 0), project(t, b, x1, 0), project(t, b, x1, b.H), project(t, b, x0, b.H)}
		gradientQuad(q, [4]rl.Color{alpha(x0), alpha(x1), alpha(x1), alpha(x0)})
	}
}
