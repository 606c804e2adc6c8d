package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/scene"
)

func sprintf(format string, v float64) string {
	if format == "" {
		format = "%.2f"
	}
	return fmt.Sprintf(format, v)
}

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a bar filled to v over rng.
func (r *Renderer) DrawBar(x, y int32, label string, v float64, rng FieldRange, text string, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	fill := int32(float64(barWidth) * rng.Normalize(v))
	rl.DrawRectangle(barX, y+2, fill, r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar growing left or right from the centre line.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, v float64, rng FieldRange, text string, width int32) int32 {
	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 50
	centerX := barX + barWidth/2

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, rl.Gray)

	limit := math.Max(math.Abs(rng.Min), math.Abs(rng.Max))
	frac := 0.0
	if limit > 0 {
		frac = math.Min(1, math.Abs(v)/limit)
	}
	fillWidth := int32(float64(barWidth/2) * frac)
	fillX, col := centerX, r.Theme.BarFillPositive
	if v < 0 {
		fillX, col = centerX-fillWidth, r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fillX, y+2, fillWidth, r.Theme.BarHeight, col)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, v scene.View, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		return r.DrawLabelValue(x, y, fd.Label, fd.Text(v))
	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, fd.Getter(v), fd.Range, fd.Text(v), width)
	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, fd.Getter(v), fd.Range, fd.Text(v), width)
	case WidgetSpacer:
		return y + 6
	}
	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, v scene.View, width int32) int32 {
	if sd.Visible != nil && !sd.Visible(v) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		y = r.DrawField(x, y, fd, v, width)
	}
	return y + 4
}

// SectionHeight returns the height DrawSection will use for v.
func (r *Renderer) SectionHeight(sd SectionDescriptor, v scene.View) int32 {
	if sd.Visible != nil && !sd.Visible(v) {
		return 0
	}
	var h int32
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		switch fd.Widget {
		case WidgetText:
			h += r.Theme.LineHeight
		case WidgetBar, WidgetCenteredBar:
			h += r.Theme.LineHeight + 2
		case WidgetSpacer:
			h += 6
		}
	}
	return h + 4
}
