// Package components defines ECS components for the showcase scene.
package components

import (
	"github.com/pthm-cable/glass/parallax"
	"github.com/pthm-cable/glass/surface"
)

// Kind selects which effect a widget carries.
type Kind uint8

const (
	KindTilt       Kind = iota // shimmer panel
	KindRefraction             // refraction card
	KindParallax               // pointer parallax layer
)

// String returns the config name for a Kind.
func (k Kind) String() string {
	names := KindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// KindNames returns the config names for all kinds, in constant order.
func KindNames() []string {
	return []string{"tilt", "refraction", "parallax"}
}

// ParseKind maps a config name to a Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range KindNames() {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Widget identifies a scene entity.
type Widget struct {
	Name    string
	Kind    Kind
	Caption string
	Image   string
	Order   int // draw order, lowest first
}

// Effect holds the widget's effect instance. Exactly one member is set,
// matching Widget.Kind.
type Effect struct {
	Tilt       *surface.TiltSurface
	Refraction *surface.RefractionSurface
	Parallax   *parallax.Controller
}

// Mount starts the effect.
func (e *Effect) Mount() {
	switch {
	case e.Tilt != nil:
		e.Tilt.Mount()
	case e.Refraction != nil:
		e.Refraction.Mount()
	case e.Parallax != nil:
		e.Parallax.Start()
	}
}

// Unmount stops the effect. Safe to call twice.
func (e *Effect) Unmount() {
	switch {
	case e.Tilt != nil:
		e.Tilt.Unmount()
	case e.Refraction != nil:
		e.Refraction.Unmount()
	case e.Parallax != nil:
		e.Parallax.Stop()
	}
}

// PointerEnter forwards a box-relative entry. Parallax layers track the
// pointer globally and ignore it.
func (e *Effect) PointerEnter(x, y, w, h float64) {
	switch {
	case e.Tilt != nil:
		e.Tilt.PointerEnter(x, y, w, h)
	case e.Refraction != nil:
		e.Refraction.PointerEnter(x, y, w, h)
	}
}

// PointerMove forwards a box-relative move.
func (e *Effect) PointerMove(x, y, w, h float64) {
	switch {
	case e.Tilt != nil:
		e.Tilt.PointerMove(x, y, w, h)
	case e.Refraction != nil:
		e.Refraction.PointerMove(x, y, w, h)
	}
}

// PointerLeave forwards a leave.
func (e *Effect) PointerLeave() {
	switch {
	case e.Tilt != nil:
		e.Tilt.PointerLeave()
	case e.Refraction != nil:
		e.Refraction.PointerLeave()
	}
}
