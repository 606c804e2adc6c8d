package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel displays and edits.
type ControlsState struct {
	ReducedMotion bool
	Mounted       bool
	Paused        bool
	Autopilot     bool    // scripted pointer path
	TimeScale     float32 // frame clock multiplier
}

// ControlsAction reports which buttons were pressed this frame.
type ControlsAction struct {
	ToggleReducedMotion bool
	ToggleMount         bool
	TogglePause         bool
	ToggleAutopilot     bool
	TimeScale           float32
}

// Any reports whether a button was pressed.
func (a ControlsAction) Any() bool {
	return a.ToggleReducedMotion || a.ToggleMount || a.TogglePause || a.ToggleAutopilot
}

// ControlsPanel renders raygui buttons for motion and lifecycle controls,
// plus the overlay key legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsAction {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight
	debug := overlays.ByCategory("debug")

	const buttonH = 24
	height := padding*2 + lineHeight + 4*(buttonH+6) + 34 + lineHeight*int32(len(debug)+1)
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	w := float32(c.width - padding*2)

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(lineHeight) + 4

	action := ControlsAction{TimeScale: state.TimeScale}
	button := func(label string) bool {
		pressed := gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: buttonH}, label)
		y += buttonH + 6
		return pressed
	}
	action.ToggleReducedMotion = button("Reduced motion: " + onOff(state.ReducedMotion))
	action.ToggleMount = button(toggleText(state.Mounted, "Unmount scene", "Mount scene"))
	action.TogglePause = button(toggleText(state.Paused, "Resume", "Pause"))
	action.ToggleAutopilot = button("Autopilot: " + onOff(state.Autopilot))

	rl.DrawText(fmt.Sprintf("Time scale %.2fx", state.TimeScale), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	action.TimeScale = gui.SliderBar(rl.Rectangle{X: x + 30, Y: y, Width: w - 60, Height: 16}, "0.25", "2", state.TimeScale, 0.25, 2)
	y += 20

	rl.DrawText("Debug", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(lineHeight)
	for _, desc := range debug {
		c.drawToggle(int32(x), int32(y), desc, overlays.IsEnabled(desc.ID), int32(w))
		y += float32(lineHeight)
	}
	return action
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = r.Theme.BarFill
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Gray)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func toggleText(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}
