// Scene snapshot tool - renders the showcase with the pointer parked at a
// position to a PNG file for inspection.
//
// Usage: go run ./cmd/snapshot -x 280 -y 470 -frames 60 -out hover.png
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/renderer"
	"github.com/pthm-cable/glass/scene"
	"github.com/pthm-cable/glass/viewport"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "snapshot.png", "Output PNG path")
	x := flag.Float64("x", -1, "Pointer X (negative = no pointer)")
	y := flag.Float64("y", -1, "Pointer Y")
	frames := flag.Int("frames", 60, "Frames to run before capturing")
	reduced := flag.Bool("reduced-motion", false, "Render with reduced motion")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Glass Snapshot")
	defer rl.CloseWindow()

	vp := viewport.New(float64(width), float64(height))
	backdrop := renderer.NewBackdrop(vp, 11, 15, 30)
	backdrop.Init()
	defer backdrop.Unload()

	s, err := scene.New(scene.Options{
		Config:     cfg,
		Viewport:   vp,
		Preference: motion.NewPreference(*reduced),
		Backdrop:   backdrop,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}
	s.Mount()
	defer s.Unmount()

	draw := renderer.NewScene()
	draw.Init(s.Views())
	defer draw.Unload()

	if *x >= 0 && *y >= 0 {
		vp.DispatchPointerMove(*x, *y)
	}
	for i := 1; i <= *frames; i++ {
		s.Step(time.Duration(i) * time.Second / 60)
	}

	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	backdrop.Draw()
	draw.Draw(s.Views())
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Scene rendered to: %s (%dx%d, %d frames)\n", *outPath, width, height, *frames)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
