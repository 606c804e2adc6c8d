package telemetry

import (
	"context"
	"log/slog"
	"sort"
)

// WindowStats holds aggregated frame-loop statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame uint64 `csv:"-"`
	WindowEndFrame   uint64 `csv:"window_end"`
	Frames           int    `csv:"frames"`

	// Callbacks run per frame
	CallbacksMean float64 `csv:"callbacks_mean"`
	CallbacksMax  int     `csv:"callbacks_max"`

	// Queue depth left after each frame
	PendingMean float64 `csv:"pending_mean"`
	PendingMax  int     `csv:"pending_max"`

	// Idle frames ran no callbacks; a settled scene should be mostly idle
	// apart from the ambient field and shimmer streaks.
	IdleFrames int `csv:"idle_frames"`

	// Callback wall time in microseconds
	StepP50US float64 `csv:"step_p50_us"`
	StepP90US float64 `csv:"step_p90_us"`

	// Lifecycle violations
	DuplicatedFrames int `csv:"duplicated_frames"`
	LeakedFrames     int `csv:"leaked_frames"`

	// Pointer events dispatched during the window
	PointerEvents int `csv:"pointer_events"`
}

// Healthy reports whether no lifecycle violation was observed.
func (s WindowStats) Healthy() bool {
	return s.DuplicatedFrames == 0 && s.LeakedFrames == 0
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeMedianP90 returns the 50th and 90th percentiles of values without
// modifying it.
func ComputeMedianP90(values []float64) (p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return Percentile(sorted, 0.50), Percentile(sorted, 0.90)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartFrame),
		slog.Uint64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Float64("callbacks_mean", s.CallbacksMean),
		slog.Int("callbacks_max", s.CallbacksMax),
		slog.Float64("pending_mean", s.PendingMean),
		slog.Int("pending_max", s.PendingMax),
		slog.Int("idle_frames", s.IdleFrames),
		slog.Float64("step_p50_us", s.StepP50US),
		slog.Float64("step_p90_us", s.StepP90US),
		slog.Int("duplicated_frames", s.DuplicatedFrames),
		slog.Int("leaked_frames", s.LeakedFrames),
		slog.Int("pointer_events", s.PointerEvents),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	level := slog.LevelInfo
	if !s.Healthy() {
		level = slog.LevelWarn
	}
	slog.Log(context.Background(), level, "frames", "stats", s)
}
