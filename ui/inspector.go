package ui

import (
	"fmt"

	"github.com/pthm-cable/glass/components"
	"github.com/pthm-cable/glass/scene"
)

// Inspector renders the hovered widget's live effect state.
type Inspector struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates an inspector whose bar ranges match the configured
// tilt and parallax limits.
func NewInspector(x, y, width int32, maxTilt, parallaxMax float64) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		sections: InspectorSections(maxTilt, parallaxMax),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Sections returns the inspector layout.
func (ins *Inspector) Sections() []SectionDescriptor {
	return ins.sections
}

// Draw renders the panel for v and returns the Y below it.
func (ins *Inspector) Draw(v scene.View) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range ins.sections {
		height += r.SectionHeight(sd, v)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, v, ins.width-padding*2)
	}
	return ins.y + height
}

func isKind(k components.Kind) func(scene.View) bool {
	return func(v scene.View) bool { return v.Kind == k }
}

// InspectorSections describes the inspector layout for every widget kind.
func InspectorSections(maxTilt, parallaxMax float64) []SectionDescriptor {
	tiltRange := SymmetricRange(maxTilt)
	return []SectionDescriptor{
		{
			ID:    "widget",
			Title: "Widget",
			Fields: []FieldDescriptor{
				{ID: "name", Label: "Name", TextGetter: func(v scene.View) string { return v.Name }},
				{ID: "kind", Label: "Kind", TextGetter: func(v scene.View) string { return v.Kind.String() }},
				{ID: "bounds", Label: "Bounds", TextGetter: func(v scene.View) string {
					return fmt.Sprintf("%.0f,%.0f %.0fx%.0f", v.Bounds.X, v.Bounds.Y, v.Bounds.W, v.Bounds.H)
				}},
			},
		},
		{
			ID:      "shimmer",
			Title:   "Shimmer",
			Visible: isKind(components.KindTilt),
			Fields: []FieldDescriptor{
				{ID: "phase", Label: "Phase", TextGetter: func(v scene.View) string { return v.Tilt.Phase.String() }},
				{ID: "rotate_x", Label: "Rotate X", Widget: WidgetCenteredBar, Format: "%+.1f", Range: tiltRange,
					Getter: func(v scene.View) float64 { return v.Tilt.Transform.RotateX }},
				{ID: "rotate_y", Label: "Rotate Y", Widget: WidgetCenteredBar, Format: "%+.1f", Range: tiltRange,
					Getter: func(v scene.View) float64 { return v.Tilt.Transform.RotateY }},
				{ID: "scale", Label: "Scale", Format: "%.3f",
					Getter: func(v scene.View) float64 { return v.Tilt.Transform.Scale }},
				{ID: "streak", Label: "Streak", Widget: WidgetBar, Format: "%.2f",
					Range:  FieldRange{Min: -0.6, Max: 1.6},
					Getter: func(v scene.View) float64 { return v.Tilt.Streak.Offset }},
			},
		},
		{
			ID:      "refraction",
			Title:   "Refraction",
			Visible: isKind(components.KindRefraction),
			Fields: []FieldDescriptor{
				{ID: "filter", Label: "Filter", TextGetter: func(v scene.View) string { return v.Refraction.Filter.ID }},
				{ID: "rotate_x", Label: "Rotate X", Widget: WidgetCenteredBar, Format: "%+.1f", Range: tiltRange,
					Getter: func(v scene.View) float64 { return v.Refraction.Transform.RotateX }},
				{ID: "rotate_y", Label: "Rotate Y", Widget: WidgetCenteredBar, Format: "%+.1f", Range: tiltRange,
					Getter: func(v scene.View) float64 { return v.Refraction.Transform.RotateY }},
				{ID: "glare", Label: "Glare", TextGetter: func(v scene.View) string {
					if g := v.Refraction.Glare; g != nil {
						return fmt.Sprintf("%.2f, %.2f", g.X, g.Y)
					}
					return "off"
				}},
			},
		},
		{
			ID:      "parallax",
			Title:   "Parallax",
			Visible: isKind(components.KindParallax),
			Fields: []FieldDescriptor{
				{ID: "dx", Label: "DX", Widget: WidgetCenteredBar, Format: "%+.1f", Range: SymmetricRange(parallaxMax),
					Getter: func(v scene.View) float64 { return v.Parallax.DX }},
				{ID: "dy", Label: "DY", Widget: WidgetCenteredBar, Format: "%+.1f", Range: SymmetricRange(parallaxMax),
					Getter: func(v scene.View) float64 { return v.Parallax.DY }},
			},
		},
	}
}
