package ui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glass/components"
	"github.com/pthm-cable/glass/parallax"
	"github.com/pthm-cable/glass/scene"
	"github.com/pthm-cable/glass/surface"
	"github.com/pthm-cable/glass/tilt"
	"github.com/pthm-cable/glass/viewport"
)

func TestFieldRangeNormalize(t *testing.T) {
	tests := []struct {
		name string
		rng  FieldRange
		v    float64
		want float64
	}{
		{"unit mid", DefaultRange(), 0.5, 0.5},
		{"symmetric zero", SymmetricRange(15), 0, 0.5},
		{"symmetric max", SymmetricRange(15), 15, 1},
		{"clamp low", SymmetricRange(15), -40, 0},
		{"clamp high", DefaultRange(), 3, 1},
		{"empty", FieldRange{Min: 1, Max: 1}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.Normalize(tt.v); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%f) = %f, want %f", tt.v, got, tt.want)
			}
		})
	}
}

func sectionByID(t *testing.T, sections []SectionDescriptor, id string) SectionDescriptor {
	t.Helper()
	for _, sd := range sections {
		if sd.ID == id {
			return sd
		}
	}
	t.Fatalf("section %q missing", id)
	return SectionDescriptor{}
}

func fieldText(t *testing.T, sd SectionDescriptor, id string, v scene.View) string {
	t.Helper()
	for _, fd := range sd.Fields {
		if fd.ID == id {
			return fd.Text(v)
		}
	}
	t.Fatalf("field %q missing from %q", id, sd.ID)
	return ""
}

func TestInspectorSectionsFollowKind(t *testing.T) {
	sections := InspectorSections(15, 20)
	views := map[components.Kind]scene.View{
		components.KindTilt:       {Kind: components.KindTilt},
		components.KindRefraction: {Kind: components.KindRefraction},
		components.KindParallax:   {Kind: components.KindParallax},
	}
	want := map[components.Kind]string{
		components.KindTilt:       "shimmer",
		components.KindRefraction: "refraction",
		components.KindParallax:   "parallax",
	}
	for kind, v := range views {
		for _, sd := range sections {
			if sd.Visible == nil {
				continue
			}
			if got, exp := sd.Visible(v), sd.ID == want[kind]; got != exp {
				t.Errorf("%s: section %q visible = %v, want %v", kind, sd.ID, got, exp)
			}
		}
	}
}

func TestInspectorFieldValues(t *testing.T) {
	sections := InspectorSections(15, 20)

	tv := scene.View{
		Name:   "shimmer",
		Kind:   components.KindTilt,
		Bounds: viewport.Rect{X: 10, Y: 20, W: 300, H: 400},
		Tilt: surface.TiltRender{
			Transform: surface.Transform{RotateX: 12, RotateY: -12, Scale: 1.03},
			Phase:     tilt.Tracking,
		},
	}
	widget := sectionByID(t, sections, "widget")
	if got := fieldText(t, widget, "bounds", tv); got != "10,20 300x400" {
		t.Errorf("bounds = %q", got)
	}
	shimmer := sectionByID(t, sections, "shimmer")
	if got := fieldText(t, shimmer, "rotate_y", tv); got != "-12.0" {
		t.Errorf("rotate_y = %q", got)
	}
	if got := fieldText(t, shimmer, "phase", tv); got != "tracking" {
		t.Errorf("phase = %q", got)
	}

	rv := scene.View{Kind: components.KindRefraction}
	refraction := sectionByID(t, sections, "refraction")
	if got := fieldText(t, refraction, "glare", rv); got != "off" {
		t.Errorf("glare without tilt = %q, want off", got)
	}
	rv.Refraction.Glare = &surface.Glare{X: 0.25, Y: 0.75}
	if got := fieldText(t, refraction, "glare", rv); got != "0.25, 0.75" {
		t.Errorf("glare = %q", got)
	}

	pv := scene.View{Kind: components.KindParallax, Parallax: parallax.Offset{DX: 10, DY: -5}}
	if got := fieldText(t, sectionByID(t, sections, "parallax"), "dy", pv); got != "-5.0" {
		t.Errorf("dy = %q", got)
	}
}

func TestOverlayRegistry(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayHUD) || reg.IsEnabled(OverlayBounds) {
		t.Fatal("defaults not applied")
	}
	id, on, ok := reg.HandleKeyPress(rl.KeyB)
	if !ok || id != OverlayBounds || !on {
		t.Errorf("HandleKeyPress(B) = %q, %v, %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
	if got := len(reg.ByCategory("debug")); got != 3 {
		t.Errorf("debug overlays = %d, want 3", got)
	}
}

func TestHUDStatusLine(t *testing.T) {
	tests := []struct {
		data HUDData
		want string
	}{
		{HUDData{Mounted: true}, "full motion | mounted"},
		{HUDData{Mounted: true, ReducedMotion: true, LowPower: true}, "reduced motion | mounted"},
		{HUDData{LowPower: true, Paused: true}, "low power | unmounted, paused"},
	}
	for _, tt := range tests {
		if got := tt.data.StatusLine(); got != tt.want {
			t.Errorf("StatusLine(%+v) = %q, want %q", tt.data, got, tt.want)
		}
	}
}
