// Package ui provides a descriptor-driven UI for the showcase. Panels are
// described as sections of fields with getters over a scene.View, so the
// inspector layout can change without touching the drawing code.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/scene"
)

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetCenteredBar                   // Bar growing from zero, for signed values
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// SymmetricRange returns a [-limit, +limit] range.
func SymmetricRange(limit float64) FieldRange {
	return FieldRange{Min: -limit, Max: limit}
}

// Normalize maps v into [0, 1] over the range, clamped.
func (r FieldRange) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	return max(0, min(1, n))
}

// FieldDescriptor defines how to display a single value of a view.
type FieldDescriptor struct {
	ID         string
	Label      string
	Widget     WidgetType
	Format     string // Printf format for Getter values
	Range      FieldRange
	Getter     func(scene.View) float64
	TextGetter func(scene.View) string
}

// Text returns the field's display string.
func (fd FieldDescriptor) Text(v scene.View) string {
	switch {
	case fd.TextGetter != nil:
		return fd.TextGetter(v)
	case fd.Getter != nil:
		return sprintf(fd.Format, fd.Getter(v))
	}
	return ""
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(scene.View) bool // nil = always visible
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 15, G: 20, B: 35, A: 230},
		PanelBorder:     rl.Color{R: 70, G: 80, B: 110, A: 255},
		SectionHeader:   rl.Color{R: 147, G: 197, B: 253, A: 255},
		LabelColor:      rl.LightGray,
		ValueColor:      rl.RayWhite,
		BarBg:           rl.Color{R: 40, G: 44, B: 60, A: 255},
		BarFill:         rl.Color{R: 96, G: 165, B: 250, A: 255},
		BarFillNegative: rl.Color{R: 244, G: 114, B: 182, A: 255},
		BarFillPositive: rl.Color{R: 129, G: 140, B: 248, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      80,
		BarHeight:       10,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
