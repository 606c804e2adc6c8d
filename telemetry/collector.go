package telemetry

// Collector accumulates frame samples into fixed-size windows.
type Collector struct {
	windowFrames int

	windowStart uint64
	lastFrame   uint64

	frames        int
	callbacksSum  int
	callbacksMax  int
	pendingSum    int
	pendingMax    int
	idle          int
	duplicated    int
	leaked        int
	pointerEvents int
	stepUS        []float64
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 120
	}
	return &Collector{
		windowFrames: windowFrames,
		stepUS:       make([]float64, 0, windowFrames),
	}
}

// Record adds one frame sample.
func (c *Collector) Record(s FrameSample) {
	if c.frames == 0 {
		c.windowStart = s.Frame
	}
	c.lastFrame = s.Frame
	c.frames++

	c.callbacksSum += s.Callbacks
	c.callbacksMax = max(c.callbacksMax, s.Callbacks)
	c.pendingSum += s.Pending
	c.pendingMax = max(c.pendingMax, s.Pending)
	if s.Callbacks == 0 {
		c.idle++
	}
	if len(s.Duplicated) > 0 {
		c.duplicated++
	}
	if len(s.Leaked) > 0 {
		c.leaked++
	}
	c.stepUS = append(c.stepUS, float64(s.Duration.Nanoseconds())/1e3)
}

// RecordPointerEvent counts a dispatched pointer event.
func (c *Collector) RecordPointerEvent() {
	c.pointerEvents++
}

// ShouldFlush returns true once the window is full.
func (c *Collector) ShouldFlush() bool {
	return c.frames >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush() WindowStats {
	stats := WindowStats{
		WindowStartFrame: c.windowStart,
		WindowEndFrame:   c.lastFrame,
		Frames:           c.frames,
		CallbacksMax:     c.callbacksMax,
		PendingMax:       c.pendingMax,
		IdleFrames:       c.idle,
		DuplicatedFrames: c.duplicated,
		LeakedFrames:     c.leaked,
		PointerEvents:    c.pointerEvents,
	}
	if c.frames > 0 {
		stats.CallbacksMean = float64(c.callbacksSum) / float64(c.frames)
		stats.PendingMean = float64(c.pendingSum) / float64(c.frames)
	}
	stats.StepP50US, stats.StepP90US = ComputeMedianP90(c.stepUS)

	c.frames = 0
	c.callbacksSum, c.callbacksMax = 0, 0
	c.pendingSum, c.pendingMax = 0, 0
	c.idle, c.duplicated, c.leaked = 0, 0, 0
	c.pointerEvents = 0
	c.stepUS = c.stepUS[:0]

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int {
	return c.windowFrames
}
