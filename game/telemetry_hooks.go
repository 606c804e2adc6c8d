package game

import (
	"log/slog"

	"github.com/pthm-cable/glass/telemetry"
)

// onWindow receives each completed frame-loop window from the scene.
func (g *Game) onWindow(stats telemetry.WindowStats) {
	perf := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "window_end", stats.WindowEndFrame, "stats", perf)
	} else if !stats.Healthy() {
		stats.LogStats()
	}

	if err := g.output.WriteFrames(stats); err != nil {
		slog.Error("failed to write frames", "error", err)
	}
	if err := g.output.WritePerf(perf, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
