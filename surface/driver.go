package surface

import (
	"time"

	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/tilt"
)

// MaxFrameDT caps the integration step after a stall (hidden window, debugger).
const MaxFrameDT = 1.0 / 15.0

// driver is the mount lifecycle shared by surfaces: one capability gate,
// one tilt model and at most one pending frame.
type driver struct {
	sched frame.Scheduler
	env   motion.Environment
	cfg   motion.Config
	model *tilt.Model

	gate        *motion.Gate
	unsubscribe func()
	handle      frame.Handle
	last        time.Duration

	// step advances one frame and reports whether another is needed.
	step func(dt float64) bool
}

func (d *driver) mount(onChange func(motion.Capability)) bool {
	if d.gate != nil {
		return false
	}
	d.gate = motion.NewGate(d.env, d.cfg)
	d.model.SetReducedMotion(!d.gate.ShouldAnimate())
	d.unsubscribe = d.gate.Subscribe(func(c motion.Capability) {
		d.model.SetReducedMotion(c.ReducedMotion)
		if c.ReducedMotion {
			d.sleep()
		}
		onChange(c)
	})
	return true
}

func (d *driver) unmount() {
	d.sleep()
	if d.unsubscribe != nil {
		d.unsubscribe()
		d.unsubscribe = nil
	}
	if d.gate != nil {
		d.gate.Close()
		d.gate = nil
	}
}

func (d *driver) mounted() bool {
	return d.gate != nil
}

// animating reports whether frames may be requested.
func (d *driver) animating() bool {
	return d.gate != nil && d.gate.ShouldAnimate()
}

func (d *driver) wake() {
	if d.handle != 0 || !d.animating() {
		return
	}
	d.last = 0
	d.handle = d.sched.RequestFrame(d.tick)
}

func (d *driver) sleep() {
	if d.handle != 0 {
		d.sched.CancelFrame(d.handle)
		d.handle = 0
	}
}

func (d *driver) awake() bool {
	return d.handle != 0
}

func (d *driver) tick(now time.Duration) {
	d.handle = 0
	dt := frame.Delta(d.last, now, MaxFrameDT)
	d.last = now
	if d.step(dt) && d.animating() {
		d.handle = d.sched.RequestFrame(d.tick)
	}
}
