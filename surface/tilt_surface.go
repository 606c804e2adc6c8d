package surface

import (
	"time"

	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/spring"
	"github.com/pthm-cable/glass/tilt"
)

// TiltOptions configures a TiltSurface.
type TiltOptions struct {
	Tilt         tilt.Options
	Intensity    float64       // shimmer strength, clamped to [0,1]
	Cycle        time.Duration // streak sweep period
	Enabled      bool          // per-surface tilt opt-out; the streak still runs
	ContentDepth float64       // translateZ of the content layer
}

// DefaultTiltOptions returns max tilt 12°, hover scale 1.03, spring 300/25,
// intensity 0.35 and a 5.5s sweep.
func DefaultTiltOptions() TiltOptions {
	return TiltOptions{
		Tilt: tilt.Options{
			MaxTilt:      12,
			ScaleOnHover: 1.03,
			Perspective:  DefaultPerspective,
			Spring:       spring.DefaultConfig(),
		},
		Intensity:    0.35,
		Cycle:        DefaultShimmerCycle,
		Enabled:      true,
		ContentDepth: 20,
	}
}

// TiltRender is what a renderer needs to draw one frame of a TiltSurface.
type TiltRender struct {
	Transform    Transform // container pose
	ContentDepth float64   // extra lift for the content layer
	Streak       Streak
	Phase        tilt.Phase
}

// TiltSurface is a glass panel that tilts towards the pointer and carries a
// sweeping specular streak.
type TiltSurface struct {
	driver
	opts    TiltOptions
	elapsed time.Duration
}

// NewTiltSurface creates an unmounted surface.
func NewTiltSurface(sched frame.Scheduler, env motion.Environment, cfg motion.Config, opts TiltOptions) *TiltSurface {
	if opts.Tilt.Perspective <= 0 {
		opts.Tilt.Perspective = DefaultPerspective
	}
	opts.Intensity = ClampIntensity(opts.Intensity)
	s := &TiltSurface{
		driver: driver{
			sched: sched,
			env:   env,
			cfg:   cfg,
			model: tilt.NewModel(opts.Tilt),
		},
		opts: opts,
	}
	s.step = s.advance
	return s
}

// Mount starts the ambient streak loop unless reduced motion is active.
func (s *TiltSurface) Mount() {
	if !s.mount(s.onCapability) {
		return
	}
	s.wake()
}

// Unmount cancels the loop and detaches from the capability probe.
func (s *TiltSurface) Unmount() {
	s.unmount()
}

// PointerEnter forwards a box-relative entry point to the tilt model.
func (s *TiltSurface) PointerEnter(x, y, w, h float64) {
	if s.opts.Enabled {
		s.model.PointerEnter(x, y, w, h)
	}
}

// PointerMove forwards a box-relative move.
func (s *TiltSurface) PointerMove(x, y, w, h float64) {
	if s.opts.Enabled {
		s.model.PointerMove(x, y, w, h)
	}
}

// PointerLeave relaxes the tilt back to rest.
func (s *TiltSurface) PointerLeave() {
	if s.opts.Enabled {
		s.model.PointerLeave()
	}
}

// Model exposes the tilt model for inspection.
func (s *TiltSurface) Model() *tilt.Model {
	return s.model
}

// Awake reports whether a frame is pending.
func (s *TiltSurface) Awake() bool {
	return s.awake()
}

// Render returns the current frame state. Under reduced motion, or before
// mounting, it is the static rest pose with the streak parked off-surface.
func (s *TiltSurface) Render() TiltRender {
	r := TiltRender{
		Transform:    Identity(s.opts.Tilt.Perspective),
		ContentDepth: s.opts.ContentDepth,
		Streak:       Streak{Offset: StreakStart, Opacity: s.opts.Intensity},
		Phase:        s.model.Phase(),
	}
	if !s.animating() {
		return r
	}
	if s.opts.Enabled {
		r.Transform = FromState(s.model.State(), s.opts.Tilt.Perspective, 0)
	}
	r.Streak.Offset = StreakOffset(s.elapsed, s.opts.Cycle)
	return r
}

func (s *TiltSurface) advance(dt float64) bool {
	s.model.Tick(dt)
	s.elapsed += time.Duration(dt * float64(time.Second))
	// The streak loops forever, so the surface never sleeps while mounted.
	return true
}

func (s *TiltSurface) onCapability(c motion.Capability) {
	if !c.ReducedMotion {
		s.wake()
	}
}
