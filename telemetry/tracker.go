package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"github.com/pthm-cable/glass/frame"
)

// Tracker wraps a frame.Loop and attributes every request to an owner.
// It flags owners holding more than one pending frame (duplicated loops)
// and owners that keep requesting frames after they were retired (leaked
// loops).
type Tracker struct {
	loop    *frame.Loop
	pending map[frame.Handle]string
	owners  map[string]*ownerState
}

type ownerState struct {
	retired    bool
	requests   uint64
	runs       uint64
	duplicated bool // logged once
	leaked     bool // logged once
}

// FrameSample describes one Step.
type FrameSample struct {
	Frame      uint64
	Callbacks  int           // callbacks run this step
	Pending    int           // requests queued for the next step
	Duration   time.Duration // wall time spent in callbacks
	Duplicated []string      // owners with more than one pending frame
	Leaked     []string      // retired owners with a pending frame
}

// NewTracker creates a tracker around loop.
func NewTracker(loop *frame.Loop) *Tracker {
	return &Tracker{
		loop:    loop,
		pending: make(map[frame.Handle]string),
		owners:  make(map[string]*ownerState),
	}
}

// For returns a scheduler whose requests are attributed to owner.
// Requesting through a retired owner's scheduler revives nothing; it is
// reported as a leak.
func (t *Tracker) For(owner string) frame.Scheduler {
	if _, ok := t.owners[owner]; !ok {
		t.owners[owner] = &ownerState{}
	}
	return ownerScheduler{t: t, owner: owner}
}

// Retire marks owner as torn down. Any frame it still holds, or requests
// later, counts as leaked.
func (t *Tracker) Retire(owner string) {
	if o, ok := t.owners[owner]; ok {
		o.retired = true
	}
}

// Revive clears a retirement, for owners that are mounted again.
func (t *Tracker) Revive(owner string) {
	if o, ok := t.owners[owner]; ok {
		o.retired = false
		o.leaked = false
	}
}

// Loop returns the underlying loop.
func (t *Tracker) Loop() *frame.Loop {
	return t.loop
}

// PendingFor returns the number of frames owner has queued.
func (t *Tracker) PendingFor(owner string) int {
	n := 0
	for _, o := range t.pending {
		if o == owner {
			n++
		}
	}
	return n
}

// Requests returns the lifetime number of frames owner requested.
func (t *Tracker) Requests(owner string) uint64 {
	if o, ok := t.owners[owner]; ok {
		return o.requests
	}
	return 0
}

// Step runs the loop once and audits the queue it leaves behind.
func (t *Tracker) Step(now time.Duration) FrameSample {
	start := time.Now()
	ran := t.loop.Step(now)
	s := FrameSample{
		Frame:     t.loop.Frame(),
		Callbacks: ran,
		Pending:   t.loop.Pending(),
		Duration:  time.Since(start),
	}

	counts := make(map[string]int, len(t.owners))
	for _, owner := range t.pending {
		counts[owner]++
	}
	for owner, n := range counts {
		o := t.owners[owner]
		if n > 1 {
			s.Duplicated = append(s.Duplicated, owner)
			if !o.duplicated {
				o.duplicated = true
				slog.Warn("duplicated frame loop", "owner", owner, "pending", n)
			}
		}
		if o.retired {
			s.Leaked = append(s.Leaked, owner)
			if !o.leaked {
				o.leaked = true
				slog.Warn("leaked frame loop", "owner", owner, "frame", s.Frame)
			}
		}
	}
	sort.Strings(s.Duplicated)
	sort.Strings(s.Leaked)
	return s
}

type ownerScheduler struct {
	t     *Tracker
	owner string
}

func (s ownerScheduler) RequestFrame(cb frame.Callback) frame.Handle {
	t := s.t
	var h frame.Handle
	h = t.loop.RequestFrame(func(now time.Duration) {
		delete(t.pending, h)
		t.owners[s.owner].runs++
		cb(now)
	})
	t.pending[h] = s.owner
	t.owners[s.owner].requests++
	return h
}

func (s ownerScheduler) CancelFrame(h frame.Handle) {
	if s.t.pending[h] != s.owner {
		return
	}
	delete(s.t.pending, h)
	s.t.loop.CancelFrame(h)
}
