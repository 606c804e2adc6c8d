package renderer

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/filter"
	"github.com/pthm-cable/glass/scene"
)

// glareColor is the refraction card highlight tint, rgb(96,165,250).
var glareColor = rl.Color{R: 96, G: 165, B: 250, A: 255}

// RefractionRenderer draws refraction cards. The filter is time-invariant,
// so each card's image is distorted once on the CPU and cached as a texture.
type RefractionRenderer struct {
	textures map[string]rl.Texture2D // by filter ID
}

// NewRefractionRenderer creates a refraction renderer.
func NewRefractionRenderer() *RefractionRenderer {
	return &RefractionRenderer{textures: make(map[string]rl.Texture2D)}
}

// Prepare builds the filtered texture for a card (must be called after the
// raylib window is created). Missing or unreadable images fall back to a
// generated pattern.
func (r *RefractionRenderer) Prepare(v scene.View) {
	desc := v.Refraction.Filter
	if _, ok := r.textures[desc.ID]; ok {
		return
	}
	w, h := int(v.Bounds.W), int(v.Bounds.H)
	src, err := loadSource(v.Image, w, h)
	if err != nil {
		slog.Warn("refraction image unavailable, using pattern", "widget", v.Name, "error", err)
		src = Pattern(w, h)
	}
	filtered := filter.Apply(desc, src)
	img := rl.NewImageFromImage(filtered)
	r.textures[desc.ID] = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
}

// Draw renders one card: distorted image, caption and cursor glare, each
// lifted to its own depth.
func (r *RefractionRenderer) Draw(v scene.View) {
	st := v.Refraction
	tex, ok := r.textures[st.Filter.ID]
	if !ok {
		r.Prepare(v)
		tex = r.textures[st.Filter.ID]
	}

	frame := projectQuad(st.Transform, v.Bounds)
	frame.fill(glassFill)

	texturedQuad(tex, projectQuad(st.Transform.AtDepth(st.ImageDepth), v.Bounds), rl.White)
	drawCaption(st.Transform.AtDepth(st.CaptionDepth), v.Bounds, v.Caption, 26)

	if g := st.Glare; g != nil {
		t := st.Transform.AtDepth(g.Depth)
		c := project(t, v.Bounds, g.X*v.Bounds.W, g.Y*v.Bounds.H)
		radius := float32(0.6 * math.Max(v.Bounds.W, v.Bounds.H) * t.Scale)

		x0, y0, x1, y1 := frame.extent()
		rl.BeginScissorMode(int32(x0), int32(y0), int32(x1-x0), int32(y1-y0))
		rl.DrawCircleGradient(int32(c.X), int32(c.Y), radius, rl.Fade(glareColor, float32(g.Opacity)), rl.Fade(glareColor, 0))
		rl.EndScissorMode()
	}

	frame.outline(1.5, glassBorder)
}

// Unload frees cached textures.
func (r *RefractionRenderer) Unload() {
	for id, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, id)
	}
}

func (q quad) extent() (x0, y0, x1, y1 float32) {
	x0, y0 = q[0].X, q[0].Y
	x1, y1 = x0, y0
	for _, p := range q[1:] {
		x0, y0 = min(x0, p.X), min(y0, p.Y)
		x1, y1 = max(x1, p.X), max(y1, p.Y)
	}
	return x0, y0, x1, y1
}

func loadSource(path string, w, h int) (image.Image, error) {
	if path == "" {
		return Pattern(w, h), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Pattern generates a w×h stand-in image: a diagonal blue-violet gradient
// with concentric rings that make the distortion easy to see.
func Pattern(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := (float64(x)/float64(max(w, 1)) + float64(y)/float64(max(h, 1))) / 2
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			ring := 0.5 + 0.5*math.Cos(d/6)
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(40 + 80*t + 30*ring),
				G: uint8(60 + 40*ring),
				B: uint8(150 + 90*(1-t)),
				A: 255,
			})
		}
	}
	return img
}
