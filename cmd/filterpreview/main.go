// Refraction filter preview tool - interactive tuning with sliders.
//
// Usage: go run ./cmd/filterpreview
package main

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/filter"
	"github.com/pthm-cable/glass/renderer"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	gridSize     = 256
	previewSize  = 320
	panelX       = 2*previewSize + 40
	panelWidth   = windowWidth - panelX - 20
)

// params holds the tunable filter inputs.
type params struct {
	FreqX   float32
	FreqY   float32
	Scale   float32
	Octaves int
	Seed    int64
}

func defaults() params {
	return params{
		FreqX:   float32(filter.DefaultFrequency.X),
		FreqY:   float32(filter.DefaultFrequency.Y),
		Scale:   filter.DefaultScale,
		Octaves: filter.DefaultNumOctaves,
		Seed:    filter.DefaultSeed,
	}
}

func (p params) descriptor() filter.Descriptor {
	d := filter.BuildDistortionFilter(p.Seed, filter.Frequency{X: float64(p.FreqX), Y: float64(p.FreqY)}, float64(p.Scale))
	d.Turbulence.NumOctaves = p.Octaves
	return d.WithID("preview")
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Refraction Filter Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	p := defaults()
	source := renderer.Pattern(gridSize, gridSize)

	blank := rl.GenImageColor(gridSize, gridSize, rl.Black)
	mapTex := rl.LoadTextureFromImage(blank)
	outTex := rl.LoadTextureFromImage(blank)
	rl.UnloadImage(blank)
	defer rl.UnloadTexture(mapTex)
	defer rl.UnloadTexture(outTex)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			d := p.descriptor()
			rl.UpdateTexture(mapTex, fieldPixels(d.DisplacementMap(gridSize, gridSize)))
			rl.UpdateTexture(outTex, imagePixels(filter.Apply(d, source)))
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		src := rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize}
		for i, tex := range []rl.Texture2D{mapTex, outTex} {
			x := float32(10 + i*(previewSize+20))
			rl.DrawTexturePro(tex, src, rl.Rectangle{X: x, Y: 30, Width: previewSize, Height: previewSize}, rl.Vector2{}, 0, rl.White)
			rl.DrawRectangleLines(int32(x), 30, previewSize, previewSize, rl.DarkGray)
		}
		rl.DrawText("Displacement map (R,G)", 10, 8, 16, rl.DarkGray)
		rl.DrawText("Filtered pattern", previewSize+30, 8, 16, rl.DarkGray)

		y := float32(10)
		rl.DrawText("Filter Parameters", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		slider := func(label, lo, hi string, value, min, max float32, format string) float32 {
			rl.DrawText(label, panelX, int32(y), 14, rl.Gray)
			y += 18
			v := gui.SliderBar(rl.Rectangle{X: panelX + 30, Y: y, Width: float32(panelWidth - 110), Height: 20}, lo, hi, value, min, max)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+panelWidth-70), int32(y+2), 16, rl.DarkGray)
			y += 35
			return v
		}

		if v := slider("Base frequency X", "0", "0.1", p.FreqX, 0, 0.1, "%.3f"); v != p.FreqX {
			p.FreqX, needsRegen = v, true
		}
		if v := slider("Base frequency Y", "0", "0.1", p.FreqY, 0, 0.1, "%.3f"); v != p.FreqY {
			p.FreqY, needsRegen = v, true
		}
		if v := slider("Displacement scale (px)", "0", "40", p.Scale, 0, 40, "%.1f"); v != p.Scale {
			p.Scale, needsRegen = v, true
		}
		if v := int(slider("Octaves", "1", "5", float32(p.Octaves), 1, 5, "%.0f") + 0.5); v != p.Octaves {
			p.Octaves, needsRegen = v, true
		}
		if v := int64(slider("Seed", "0", "999", float32(p.Seed), 0, 999, "%.0f")); v != p.Seed {
			p.Seed, needsRegen = v, true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Random Seed") {
			p.Seed = int64(rl.GetRandomValue(0, 999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			p = defaults()
			needsRegen = true
		}
		y += 50

		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range yamlLines(p) {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("C: copy YAML   M: copy SVG markup", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(strings.Join(yamlLines(p), "\n"))
		}
		if rl.IsKeyPressed(rl.KeyM) {
			markup, err := p.descriptor().Markup()
			if err != nil {
				slog.Error("markup failed", "error", err)
				os.Exit(1)
			}
			rl.SetClipboardText(markup)
		}

		rl.EndDrawing()
	}
}

func yamlLines(p params) []string {
	return []string{
		"refraction:",
		fmt.Sprintf("  seed: %d", p.Seed),
		"  base_frequency:",
		fmt.Sprintf("    x: %.3f", p.FreqX),
		fmt.Sprintf("    y: %.3f", p.FreqY),
		fmt.Sprintf("  scale: %.1f", p.Scale),
	}
}


// fieldPixels renders the displacement channels as red and green.
func fieldPixels(f *filter.Field) []color.RGBA {
	pixels := make([]color.RGBA, len(f.Pix))
	for i, px := range f.Pix {
		pixels[i] = color.RGBA{R: uint8(px[0] * 255), G: uint8(px[1] * 255), B: 60, A: 255}
	}
	return pixels
}

func imagePixels(img *image.NRGBA) []color.RGBA {
	b := img.Bounds()
	pixels := make([]color.RGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			pixels = append(pixels, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return pixels
}
