package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/telemetry"
)

// HUDData holds what the heads-up display shows.
type HUDData struct {
	Title         string
	Widgets       int
	Frame         uint64
	FPS           int32
	Pending       int // callbacks queued for the next frame
	Callbacks     int // callbacks run last step
	ReducedMotion bool
	LowPower      bool
	Mounted       bool
	Paused        bool
}

// StatusLine summarizes motion and lifecycle state.
func (d HUDData) StatusLine() string {
	motion := "full motion"
	switch {
	case d.ReducedMotion:
		motion = "reduced motion"
	case d.LowPower:
		motion = "low power"
	}
	status := "mounted"
	if !d.Mounted {
		status = "unmounted"
	}
	if d.Paused {
		status += ", paused"
	}
	return motion + " | " + status
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Widgets: %d | Frame: %d | FPS: %d | Callbacks: %d | Pending: %d", data.Widgets, data.Frame, data.FPS, data.Callbacks, data.Pending),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(data.StatusLine(), 10, 55, 16, h.renderer.Theme.SectionHeader)
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	height := r.Theme.LineHeight*int32(len(telemetry.Phases)+2) + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 220, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	y = r.DrawSectionHeader(x, y, "Frame Phases")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%s (%.0f fps)", stats.AvgFrame.Round(time.Microsecond), stats.FPS))
	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		y = r.DrawLabelValue(x, y, phase, fmt.Sprintf("%s  %4.1f%%", avg.Round(time.Microsecond), stats.PhasePct[phase]))
	}
}
