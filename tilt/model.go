// Package tilt converts pointer positions inside a box into spring-smoothed
// 3D rotation angles and a hover scale.
//
// The model is framework-free: callers forward pointer events and drive
// Tick from their own frame scheduler.
package tilt

import (
	"math"

	"github.com/pthm-cable/glass/spring"
)

// settleEpsilon is the rest tolerance, in degrees and scale units.
const settleEpsilon = 1e-3

// Phase is the hover state of a model.
type Phase uint8

const (
	Resting  Phase = iota // target held at the identity transform
	Tracking              // pointer inside, target follows it
)

func (p Phase) String() string {
	if p == Tracking {
		return "tracking"
	}
	return "resting"
}

// Options configures a model.
type Options struct {
	MaxTilt      float64       `yaml:"max_tilt"`       // degrees
	ScaleOnHover float64       `yaml:"scale_on_hover"` // target scale while hovering
	Perspective  float64       `yaml:"perspective"`    // perspective distance for renderers
	Spring       spring.Config `yaml:"spring"`
}

// DefaultOptions returns max tilt 15°, hover scale 1.02, perspective 1000,
// stiffness 300 and damping 20. That spring is underdamped (ζ≈0.58, about 11%
// overshoot); the surfaces configure damping 25 on top of it.
func DefaultOptions() Options {
	return Options{
		MaxTilt:      15,
		ScaleOnHover: 1.02,
		Perspective:  1000,
		Spring:       spring.Config{Stiffness: 300, Damping: 20, Mass: 1},
	}
}

// State is the smoothed transform read by surfaces.
type State struct {
	RotateX float64 // degrees about the horizontal axis
	RotateY float64 // degrees about the vertical axis
	Scale   float64
}

// Rest is the identity pose.
var Rest = State{Scale: 1}

// Model owns one element's tilt springs.
type Model struct {
	opts    Options
	rotateX *spring.Axis
	rotateY *spring.Axis
	scale   *spring.Axis

	phase   Phase
	reduced bool
}

// NewModel creates a model at rest.
func NewModel(opts Options) *Model {
	if opts.ScaleOnHover <= 0 {
		opts.ScaleOnHover = 1
	}
	return &Model{
		opts:    opts,
		rotateX: spring.NewAxis(opts.Spring, 0),
		rotateY: spring.NewAxis(opts.Spring, 0),
		scale:   spring.NewAxis(opts.Spring, 1),
	}
}

// Options returns the model configuration.
func (m *Model) Options() Options {
	return m.opts
}

// Phase returns the hover state.
func (m *Model) Phase() Phase {
	return m.phase
}

// SetReducedMotion toggles reduced motion. Enabling it drops the model to
// rest immediately; no target leaves rest while it stays on.
func (m *Model) SetReducedMotion(reduced bool) {
	m.reduced = reduced
	if reduced {
		m.rotateX.Snap(0)
		m.rotateY.Snap(0)
		m.scale.Snap(1)
	}
}

// ReducedMotion reports whether reduced motion is active.
func (m *Model) ReducedMotion() bool {
	return m.reduced
}

// PointerEnter starts tracking. (x, y) is relative to the box origin and
// (w, h) is the box size.
func (m *Model) PointerEnter(x, y, w, h float64) {
	m.phase = Tracking
	if m.reduced {
		return
	}
	m.scale.SetTarget(m.opts.ScaleOnHover)
	m.retarget(x, y, w, h)
}

// PointerMove retargets rotation. Moves outside of a hover are ignored.
func (m *Model) PointerMove(x, y, w, h float64) {
	if m.phase != Tracking || m.reduced {
		return
	}
	m.retarget(x, y, w, h)
}

// PointerLeave zeroes every target; the springs relax back on later ticks.
func (m *Model) PointerLeave() {
	m.phase = Resting
	m.rotateX.SetTarget(0)
	m.rotateY.SetTarget(0)
	m.scale.SetTarget(1)
}

// Tick advances all springs by dt seconds. Both phases integrate.
func (m *Model) Tick(dt float64) {
	m.rotateX.Tick(dt)
	m.rotateY.Tick(dt)
	m.scale.Tick(dt)
}

// State returns the current smoothed transform.
func (m *Model) State() State {
	return State{
		RotateX: m.rotateX.Value,
		RotateY: m.rotateY.Value,
		Scale:   m.scale.Value,
	}
}

// Target returns the transform the springs are heading to.
func (m *Model) Target() State {
	return State{
		RotateX: m.rotateX.Target,
		RotateY: m.rotateY.Target,
		Scale:   m.scale.Target,
	}
}

// Settled reports whether every spring is at rest on its target.
func (m *Model) Settled() bool {
	return m.rotateX.Settled(settleEpsilon) &&
		m.rotateY.Settled(settleEpsilon) &&
		m.scale.Settled(settleEpsilon)
}

// AtRest reports whether the model is settled on the identity pose.
func (m *Model) AtRest() bool {
	return m.Settled() && m.Target() == Rest
}

func (m *Model) retarget(x, y, w, h float64) {
	rx, ry := Angles(x, y, w, h, m.opts.MaxTilt)
	m.rotateX.SetTarget(rx)
	m.rotateY.SetTarget(ry)
}

// Angles maps a box-relative point to target rotations:
// rotateX = ((y - cy)/cy) * -maxTilt, rotateY = ((x - cx)/cx) * maxTilt.
// A collapsed box yields zero ratios and results are clamped to ±maxTilt.
func Angles(x, y, w, h, maxTilt float64) (rotateX, rotateY float64) {
	cx, cy := w/2, h/2
	rotateX = clamp(ratio(y-cy, cy)*-maxTilt, maxTilt)
	rotateY = clamp(ratio(x-cx, cx)*maxTilt, maxTilt)
	return rotateX, rotateY
}

func ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0
	}
	r := num / den
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}

func clamp(v, limit float64) float64 {
	limit = math.Abs(limit)
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
