package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driving the pointer with the autopilot")
	logStats := flag.Bool("log-stats", false, "Output frame-loop stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	reducedMotion := flag.Bool("reduced-motion", false, "Start with reduced motion on")
	autopilot := flag.Bool("autopilot", false, "Drive the pointer along a scripted tour")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	opts := game.Options{
		OutputDir:     *outputDir,
		LogStats:      *logStats,
		Headless:      *headless,
		ReducedMotion: *reducedMotion,
		Autopilot:     *autopilot,
	}

	if *headless {
		// Headless mode - no raylib calls
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless run", "max_frames", *maxFrames)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && int(g.Frames()) >= *maxFrames {
				slog.Info("max frames reached", "frames", g.Frames())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Glass")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frames()) >= *maxFrames {
			break
		}
	}
}
