// Package motion decides whether effects may animate on this device.
//
// Every capability probe fails open: a missing media query or concurrency
// signal is treated as "motion allowed, not low power".
package motion

import (
	"log/slog"
	"runtime"
)

// MediaQuery is a boolean media feature with change notification.
type MediaQuery interface {
	Matches() bool
	OnChange(fn func(matches bool)) (remove func())
}

// Environment bundles the capability probes. Nil members mean the
// underlying API is unavailable.
type Environment struct {
	ReducedMotion MediaQuery
	Concurrency   func() (cores int, ok bool)
}

// HostEnvironment wires the reduced-motion preference to pref and reads
// concurrency from the Go runtime.
func HostEnvironment(pref MediaQuery) Environment {
	return Environment{
		ReducedMotion: pref,
		Concurrency: func() (int, bool) {
			return runtime.NumCPU(), true
		},
	}
}

// Capability is the evaluated capability snapshot.
type Capability struct {
	ReducedMotion bool
	LowPower      bool
}

// Config tunes the low-power heuristic.
type Config struct {
	// LowPowerCores marks devices with at most this many cores as low power.
	// Zero disables the heuristic.
	LowPowerCores int
}

// DefaultConfig returns the stock heuristic (<= 4 cores is low power).
func DefaultConfig() Config {
	return Config{LowPowerCores: 4}
}

// Gate holds one mount's capability decision.
type Gate struct {
	cap       Capability
	remove    func()
	nextID    uint64
	listeners map[uint64]func(Capability)
}

// NewGate evaluates env once and subscribes to reduced-motion changes.
// Call Close on teardown.
func NewGate(env Environment, cfg Config) *Gate {
	g := &Gate{listeners: make(map[uint64]func(Capability))}

	if env.ReducedMotion != nil {
		g.cap.ReducedMotion = env.ReducedMotion.Matches()
		g.remove = env.ReducedMotion.OnChange(g.setReducedMotion)
	}

	if env.Concurrency != nil && cfg.LowPowerCores > 0 {
		if cores, ok := env.Concurrency(); ok && cores > 0 {
			g.cap.LowPower = cores <= cfg.LowPowerCores
		}
	}

	slog.Debug("motion capability",
		"reduced_motion", g.cap.ReducedMotion,
		"low_power", g.cap.LowPower,
	)
	return g
}

// Capability returns the current snapshot.
func (g *Gate) Capability() Capability {
	return g.cap
}

// ShouldAnimate reports whether animation is allowed.
func (g *Gate) ShouldAnimate() bool {
	return !g.cap.ReducedMotion
}

// LowPower reports whether the reduced particle budget applies.
func (g *Gate) LowPower() bool {
	return g.cap.LowPower
}

// ParticleCount picks the particle budget for this device.
func (g *Gate) ParticleCount(standard, lowPower int) int {
	if g.cap.LowPower {
		return lowPower
	}
	return standard
}

// Subscribe registers fn for live capability changes.
func (g *Gate) Subscribe(fn func(Capability)) (remove func()) {
	g.nextID++
	id := g.nextID
	g.listeners[id] = fn
	return func() { delete(g.listeners, id) }
}

// Close detaches from the media query and drops subscribers. Safe to call twice.
func (g *Gate) Close() {
	if g.remove != nil {
		g.remove()
		g.remove = nil
	}
	clear(g.listeners)
}

func (g *Gate) setReducedMotion(reduced bool) {
	if reduced == g.cap.ReducedMotion {
		return
	}
	g.cap.ReducedMotion = reduced
	for _, fn := range g.listeners {
		fn(g.cap)
	}
}
