// Package renderer draws the showcase scene with raylib.
package renderer

import (
	"github.com/pthm-cable/glass/components"
	"github.com/pthm-cable/glass/scene"
)

// Scene draws every widget kind.
type Scene struct {
	tilt       *TiltRenderer
	refraction *RefractionRenderer
	parallax   *ParallaxRenderer
}

// NewScene creates the per-kind renderers.
func NewScene() *Scene {
	return &Scene{
		tilt:       NewTiltRenderer(),
		refraction: NewRefractionRenderer(),
		parallax:   NewParallaxRenderer(),
	}
}

// Init prepares GPU resources for views (must be called after the raylib
// window is created).
func (r *Scene) Init(views []scene.View) {
	for _, v := range views {
		if v.Kind == components.KindRefraction {
			r.refraction.Prepare(v)
		}
	}
}

// Draw renders views in order.
func (r *Scene) Draw(views []scene.View) {
	for _, v := range views {
		switch v.Kind {
		case components.KindTilt:
			r.tilt.Draw(v)
		case components.KindRefraction:
			r.refraction.Draw(v)
		case components.KindParallax:
			r.parallax.Draw(v)
		}
	}
}

// Unload frees resources.
func (r *Scene) Unload() {
	r.refraction.Unload()
}
