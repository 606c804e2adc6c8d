// Package ambient animates a free-running field of soft radial glows that
// drift and wrap around a resizable drawing surface.
package ambient

import (
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/viewport"
)

// Canvas is a 2D drawing context. Coordinates passed to the drawing calls
// are logical pixels; Resize sets the backing store size and the
// logical-to-physical scale.
type Canvas interface {
	Resize(pxW, pxH int, scale float64)
	Clear()
	// FillRadialGradient paints white at alpha in the centre fading
	// linearly to transparent at radius r.
	FillRadialGradient(x, y, r, alpha float64)
}

// Container hosts the canvas. Context returns nil when no drawing context
// is available, in which case the animator does nothing.
type Container interface {
	Size() (w, h float64)
	Context() Canvas
}

// Particle is one glow. Velocity is in logical pixels per frame.
type Particle struct {
	X, Y   float64
	Radius float64
	VX, VY float64
	Alpha  float64
}

// Options configures an animator.
type Options struct {
	Opacity       float64 `yaml:"opacity"`         // global strength in [0,1]
	Count         int     `yaml:"count"`           // particles on standard devices
	LowPowerCount int     `yaml:"low_power_count"` // particles on low-power devices
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	MaxSpeed      float64 `yaml:"max_speed"` // per-axis velocity bound, px/frame
	MinAlpha      float64 `yaml:"min_alpha"`
	MaxAlpha      float64 `yaml:"max_alpha"`
	Seed          int64   `yaml:"seed"` // 0 = time-based
}

// DefaultOptions returns opacity 0.18, 20/10 particles, radius 80-240,
// speed 0.1 and alpha 0.2-0.6.
func DefaultOptions() Options {
	return Options{
		Opacity:       0.18,
		Count:         20,
		LowPowerCount: 10,
		MinRadius:     80,
		MaxRadius:     240,
		MaxSpeed:      0.1,
		MinAlpha:      0.2,
		MaxAlpha:      0.6,
	}
}

// Animator owns one canvas, its particles, and its frame loop.
type Animator struct {
	container Container
	vp        *viewport.Viewport
	sched     frame.Scheduler
	env       motion.Environment
	cfg       motion.Config
	opts      Options
	rng       *rand.Rand

	gate         *motion.Gate
	unsubscribe  func()
	removeResize func()
	ctx          Canvas
	particles    []Particle
	handle       frame.Handle
	frames       uint64

	pxW, pxH int
}

// NewAnimator creates an idle animator. Opacity is clamped to [0,1].
func NewAnimator(container Container, vp *viewport.Viewport, sched frame.Scheduler, env motion.Environment, cfg motion.Config, opts Options) *Animator {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Opacity = math.Max(0, math.Min(1, opts.Opacity))
	return &Animator{
		container: container,
		vp:        vp,
		sched:     sched,
		env:       env,
		cfg:       cfg,
		opts:      opts,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Start evaluates device capability and begins animating. Under reduced
// motion, or when the container has no drawing context, it does nothing
// and leaves the background static.
func (a *Animator) Start() {
	if a.gate != nil {
		return
	}
	a.gate = motion.NewGate(a.env, a.cfg)
	a.unsubscribe = a.gate.Subscribe(a.onCapability)
	if !a.gate.ShouldAnimate() {
		slog.Debug("ambient start skipped", "reason", "reduced_motion")
		return
	}
	a.begin()
}

// Stop cancels the frame loop and removes listeners. Safe to call whether
// or not Start ran to completion.
func (a *Animator) Stop() {
	a.halt()
	if a.removeResize != nil {
		a.removeResize()
		a.removeResize = nil
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	if a.gate != nil {
		a.gate.Close()
		a.gate = nil
	}
	a.particles = nil
	a.ctx = nil
}

// Running reports whether a frame is pending.
func (a *Animator) Running() bool {
	return a.handle != 0
}

// Frames returns the number of frames drawn.
func (a *Animator) Frames() uint64 {
	return a.frames
}

// Particles returns a copy of the particle state.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

// PixelSize returns the backing store size last applied to the canvas.
func (a *Animator) PixelSize() (w, h int) {
	return a.pxW, a.pxH
}

func (a *Animator) begin() {
	if a.ctx == nil {
		a.ctx = a.container.Context()
		if a.ctx == nil {
			slog.Debug("ambient start skipped", "reason", "no_context")
			return
		}
	}
	if a.particles == nil {
		a.spawn()
	}
	a.resize()
	if a.removeResize == nil {
		a.removeResize = a.vp.OnResize(func(w, h float64) { a.resize() })
	}
	a.draw(0)
}

func (a *Animator) halt() {
	if a.handle != 0 {
		a.sched.CancelFrame(a.handle)
		a.handle = 0
	}
}

// onCapability pauses on reduced motion and resumes without respawning.
func (a *Animator) onCapability(c motion.Capability) {
	if c.ReducedMotion {
		a.halt()
		if a.ctx != nil {
			a.ctx.Clear()
		}
		return
	}
	if a.handle == 0 {
		a.begin()
	}
}

func (a *Animator) spawn() {
	w, h := a.container.Size()
	n := a.gate.ParticleCount(a.opts.Count, a.opts.LowPowerCount)
	o := a.opts
	a.particles = make([]Particle, n)
	for i := range a.particles {
		a.particles[i] = Particle{
			X:      a.rng.Float64() * w,
			Y:      a.rng.Float64() * h,
			Radius: o.MinRadius + a.rng.Float64()*(o.MaxRadius-o.MinRadius),
			VX:     (a.rng.Float64()*2 - 1) * o.MaxSpeed,
			VY:     (a.rng.Float64()*2 - 1) * o.MaxSpeed,
			Alpha:  o.MinAlpha + a.rng.Float64()*(o.MaxAlpha-o.MinAlpha),
		}
	}
}

// resize re-derives the backing store from the container and DPR. Particle
// state is left untouched.
func (a *Animator) resize() {
	if a.ctx == nil {
		return
	}
	w, h := a.container.Size()
	dpr := a.vp.DevicePixelRatio()
	a.pxW = int(math.Round(w * dpr))
	a.pxH = int(math.Round(h * dpr))
	a.ctx.Resize(a.pxW, a.pxH, dpr)
}

func (a *Animator) draw(time.Duration) {
	a.handle = 0
	w, h := a.container.Size()

	a.ctx.Clear()
	for i := range a.particles {
		p := &a.particles[i]
		a.ctx.FillRadialGradient(p.X, p.Y, p.Radius, p.Alpha*a.opts.Opacity)
		p.Step(w, h)
	}
	a.frames++
	a.handle = a.sched.RequestFrame(a.draw)
}

// Step integrates one frame of motion and wraps toroidally: a glow that
// fully leaves one edge (radius included) re-enters from the opposite one.
// Only the position changes.
func (p *Particle) Step(w, h float64) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < -p.Radius {
		p.X = w + p.Radius
	}
	if p.X > w+p.Radius {
		p.X = -p.Radius
	}
	if p.Y < -p.Radius {
		p.Y = h + p.Radius
	}
	if p.Y > h+p.Radius {
		p.Y = -p.Radius
	}
}
