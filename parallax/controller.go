// Package parallax shifts a layer against the global pointer position to
// fake depth.
package parallax

import (
	"math"
	"time"

	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/viewport"
)

// Offset is a bounded translation in pixels.
type Offset struct {
	DX, DY float64
}

// Compute maps a global pointer position to an offset for an element with
// the given bounds: dx = ((px - cx)/w) * max, dy = ((py - cy)/h) * max.
// Collapsed boxes yield zero and both axes are clamped to ±max.
func Compute(px, py float64, bounds viewport.Rect, max float64) Offset {
	cx, cy := bounds.Center()
	return Offset{
		DX: clamp(ratio(px-cx, bounds.W)*max, max),
		DY: clamp(ratio(py-cy, bounds.H)*max, max),
	}
}

// Controller publishes one element's parallax offset, at most once per frame.
type Controller struct {
	vp     *viewport.Viewport
	sched  frame.Scheduler
	env    motion.Environment
	cfg    motion.Config
	bounds func() viewport.Rect
	max    float64

	gate        *motion.Gate
	unsubscribe func()
	remove      func()
	handle   frame.Handle
	pending  Offset
	offset   Offset
	commits  int
	onUpdate func(Offset)
}

// NewController creates a controller. bounds is queried on every pointer
// move so layout changes are picked up without re-mounting.
func NewController(vp *viewport.Viewport, sched frame.Scheduler, env motion.Environment, cfg motion.Config, bounds func() viewport.Rect, max float64) *Controller {
	return &Controller{
		vp:     vp,
		sched:  sched,
		env:    env,
		cfg:    cfg,
		bounds: bounds,
		max:    max,
	}
}

// OnUpdate registers a callback invoked with every committed offset.
func (c *Controller) OnUpdate(fn func(Offset)) {
	c.onUpdate = fn
}

// Start subscribes to global pointer moves unless reduced motion is active,
// and follows live changes of the preference until Stop.
func (c *Controller) Start() {
	if c.gate != nil {
		return
	}
	c.gate = motion.NewGate(c.env, c.cfg)
	c.unsubscribe = c.gate.Subscribe(c.onCapability)
	if c.gate.ShouldAnimate() {
		c.listen()
	}
}

// Stop removes the listener and any pending frame. Safe to call in any state.
func (c *Controller) Stop() {
	c.detach()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.gate != nil {
		c.gate.Close()
		c.gate = nil
	}
}

// Offset returns the last committed offset.
func (c *Controller) Offset() Offset {
	return c.offset
}

// Commits returns how many offsets have been published.
func (c *Controller) Commits() int {
	return c.commits
}

func (c *Controller) listen() {
	if c.remove == nil {
		c.remove = c.vp.OnPointerMove(c.onPointerMove)
	}
}

func (c *Controller) detach() {
	if c.remove != nil {
		c.remove()
		c.remove = nil
	}
	if c.handle != 0 {
		c.sched.CancelFrame(c.handle)
		c.handle = 0
	}
}

// onCapability parks the layer at rest while reduced motion is on.
func (c *Controller) onCapability(mc motion.Capability) {
	if !mc.ReducedMotion {
		c.listen()
		return
	}
	c.detach()
	c.pending = Offset{}
	if c.offset == (Offset{}) {
		return
	}
	c.offset = Offset{}
	if c.onUpdate != nil {
		c.onUpdate(c.offset)
	}
}

func (c *Controller) onPointerMove(x, y float64) {
	c.pending = Compute(x, y, c.bounds(), c.max)
	// Intermediate events between frames only replace the pending value.
	if c.handle == 0 {
		c.handle = c.sched.RequestFrame(c.commit)
	}
}

func (c *Controller) commit(time.Duration) {
	c.handle = 0
	c.offset = c.pending
	c.commits++
	if c.onUpdate != nil {
		c.onUpdate(c.offset)
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

func clamp(v, limit float64) float64 {
	limit = math.Abs(limit)
	return math.Max(-limit, math.Min(limit, v))
}
