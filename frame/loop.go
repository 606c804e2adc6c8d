// Package frame provides an animation-frame scheduler.
//
// Components never spin their own loops. They request a callback for the next
// frame and request again from inside the callback if they need to keep
// animating. The owner of the window (or a test) drives the Loop by calling
// Step once per rendered frame.
package frame

import "time"

// Callback is invoked once with the timestamp of the frame it runs in.
type Callback func(now time.Duration)

// Handle identifies a pending frame request. The zero Handle is never issued.
type Handle uint64

// Scheduler is the subset of Loop that components depend on.
type Scheduler interface {
	RequestFrame(cb Callback) Handle
	CancelFrame(h Handle)
}

type request struct {
	handle Handle
	cb     Callback
}

// Loop queues frame callbacks and runs them in request order on Step.
// Not safe for concurrent use; it lives on the render goroutine.
type Loop struct {
	queue     []request
	running   []request
	next      Handle
	frame     uint64
	requested uint64
	lastRun   int
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{}
}

// RequestFrame schedules cb for the next Step.
func (l *Loop) RequestFrame(cb Callback) Handle {
	l.next++
	l.requested++
	l.queue = append(l.queue, request{handle: l.next, cb: cb})
	return l.next
}

// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
func (l *Loop) CancelFrame(h Handle) {
	for i, r := range l.queue {
		if r.handle == h {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
	// Cancelled from inside another callback of the batch being run.
	for i := range l.running {
		if l.running[i].handle == h {
			l.running[i].cb = nil
			return
		}
	}
}

// Step runs every callback that was pending when Step was called.
// Callbacks requested while stepping run on the following Step.
func (l *Loop) Step(now time.Duration) int {
	l.frame++
	l.running = l.queue
	l.queue = nil
	ran := 0
	for i := range l.running {
		if cb := l.running[i].cb; cb != nil {
			cb(now)
			ran++
		}
	}
	l.running = nil
	l.lastRun = ran
	return ran
}

// Pending returns the number of callbacks waiting for the next Step.
func (l *Loop) Pending() int {
	return len(l.queue)
}

// Requested returns the total number of frames ever requested.
func (l *Loop) Requested() uint64 {
	return l.requested
}

// LastRun returns how many callbacks the most recent Step executed.
func (l *Loop) LastRun() int {
	return l.lastRun
}

// Frame returns the number of Steps taken.
func (l *Loop) Frame() uint64 {
	return l.frame
}

// Delta converts two frame timestamps into seconds, clamped to maxDT.
// A zero previous timestamp yields the nominal 60 Hz step.
func Delta(prev, now time.Duration, maxDT float64) float64 {
	if prev == 0 || now <= prev {
		return 1.0 / 60.0
	}
	dt := (now - prev).Seconds()
	if maxDT > 0 && dt > maxDT {
		dt = maxDT
	}
	return dt
}
