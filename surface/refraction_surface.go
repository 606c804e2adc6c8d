package surface

import (
	"math"

	"github.com/pthm-cable/glass/filter"
	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/spring"
	"github.com/pthm-cable/glass/tilt"
)

// GlareOpacity is the peak alpha of the cursor-following glare.
const GlareOpacity = 0.15

// RefractionOptions configures a RefractionSurface.
type RefractionOptions struct {
	Tilt          tilt.Options
	Enabled       bool // tilt and glare opt-out; the filter always applies
	Seed          int64
	BaseFrequency filter.Frequency
	Scale         float64
	ImageDepth    float64
	CaptionDepth  float64
	GlareDepth    float64
}

// DefaultRefractionOptions returns max tilt 15°, hover scale 1.05, spring
// 300/25, and the default distortion filter.
func DefaultRefractionOptions() RefractionOptions {
	return RefractionOptions{
		Tilt: tilt.Options{
			MaxTilt:      15,
			ScaleOnHover: 1.05,
			Perspective:  DefaultPerspective,
			Spring:       spring.DefaultConfig(),
		},
		Enabled:       true,
		Seed:          filter.DefaultSeed,
		BaseFrequency: filter.DefaultFrequency,
		Scale:         filter.DefaultScale,
		ImageDepth:    30,
		CaptionDepth:  40,
		GlareDepth:    50,
	}
}

// Glare is a soft highlight centred on the pointer. X and Y are fractions
// of the surface size.
type Glare struct {
	X, Y    float64
	Opacity float64
	Depth   float64
}

// RefractionRender is what a renderer needs to draw one frame of a
// RefractionSurface.
type RefractionRender struct {
	Transform    Transform // container pose
	Filter       filter.Descriptor
	ImageDepth   float64
	CaptionDepth float64
	Glare        *Glare // nil when tilt is disabled
}

// RefractionSurface draws an image through the distortion filter inside a
// tilting container. It only requests frames while the tilt is in motion.
type RefractionSurface struct {
	driver
	opts   RefractionOptions
	filter filter.Descriptor
	glareX float64
	glareY float64
}

// NewRefractionSurface creates an unmounted surface whose filter gets a
// fresh identifier from ids.
func NewRefractionSurface(sched frame.Scheduler, env motion.Environment, cfg motion.Config, ids *filter.IDSource, opts RefractionOptions) *RefractionSurface {
	if opts.Tilt.Perspective <= 0 {
		opts.Tilt.Perspective = DefaultPerspective
	}
	s := &RefractionSurface{
		driver: driver{
			sched: sched,
			env:   env,
			cfg:   cfg,
			model: tilt.NewModel(opts.Tilt),
		},
		opts:   opts,
		filter: filter.BuildDistortionFilter(opts.Seed, opts.BaseFrequency, opts.Scale).WithID(ids.Next()),
		glareX: 0.5,
		glareY: 0.5,
	}
	s.step = s.advance
	return s
}

// ID returns the surface's filter identifier.
func (s *RefractionSurface) ID() string {
	return s.filter.ID
}

// Filter returns the surface's filter descriptor.
func (s *RefractionSurface) Filter() filter.Descriptor {
	return s.filter
}

// Model exposes the tilt model for inspection.
func (s *RefractionSurface) Model() *tilt.Model {
	return s.model
}

// Mount evaluates capability. No frame is requested until the pointer enters.
func (s *RefractionSurface) Mount() {
	s.mount(s.onCapability)
}

// Unmount cancels any pending frame and detaches from the capability probe.
func (s *RefractionSurface) Unmount() {
	s.unmount()
}

// Awake reports whether a frame is pending.
func (s *RefractionSurface) Awake() bool {
	return s.awake()
}

// PointerEnter starts tracking and wakes the frame loop.
func (s *RefractionSurface) PointerEnter(x, y, w, h float64) {
	if !s.opts.Enabled {
		return
	}
	s.model.PointerEnter(x, y, w, h)
	s.trackGlare(x, y, w, h)
	s.wake()
}

// PointerMove retargets the tilt and glare.
func (s *RefractionSurface) PointerMove(x, y, w, h float64) {
	if !s.opts.Enabled || s.model.Phase() != tilt.Tracking {
		return
	}
	s.model.PointerMove(x, y, w, h)
	s.trackGlare(x, y, w, h)
}

// PointerLeave relaxes the tilt; the loop keeps running until it settles.
func (s *RefractionSurface) PointerLeave() {
	if !s.opts.Enabled {
		return
	}
	s.model.PointerLeave()
	s.glareX, s.glareY = 0.5, 0.5
	s.wake()
}

// Render returns the current frame state.
func (s *RefractionSurface) Render() RefractionRender {
	r := RefractionRender{
		Transform:    Identity(s.opts.Tilt.Perspective),
		Filter:       s.filter,
		ImageDepth:   s.opts.ImageDepth,
		CaptionDepth: s.opts.CaptionDepth,
	}
	if !s.opts.Enabled {
		return r
	}
	r.Glare = &Glare{X: 0.5, Y: 0.5, Opacity: GlareOpacity, Depth: s.opts.GlareDepth}
	if s.animating() {
		r.Transform = FromState(s.model.State(), s.opts.Tilt.Perspective, 0)
		r.Glare.X, r.Glare.Y = s.glareX, s.glareY
	}
	return r
}

func (s *RefractionSurface) advance(dt float64) bool {
	s.model.Tick(dt)
	return s.model.Phase() == tilt.Tracking || !s.model.Settled()
}

func (s *RefractionSurface) onCapability(c motion.Capability) {
	if !c.ReducedMotion && s.model.Phase() == tilt.Tracking {
		s.wake()
	}
}

func (s *RefractionSurface) trackGlare(x, y, w, h float64) {
	s.glareX, s.glareY = fraction(x, w), fraction(y, h)
}

func fraction(v, size float64) float64 {
	if size <= 0 {
		return 0.5
	}
	return math.Max(0, math.Min(1, v/size))
}
