// Package spring smooths a scalar toward a target with a damped harmonic
// oscillator. Stiffness/damping follow the physical mass-spring-damper
// convention so configs read the same as the values exposed to callers.
package spring

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// criticalTolerance snaps damping ratios this close to 1 onto exactly 1 so a
// "critical" config never becomes underdamped through rounding.
const criticalTolerance = 1e-9

// Config describes a mass-spring-damper.
type Config struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

// DefaultConfig returns stiffness 300, damping 25, mass 1.
func DefaultConfig() Config {
	return Config{Stiffness: 300, Damping: 25, Mass: 1}
}

// Critical returns a critically damped config for the given stiffness (mass 1).
func Critical(stiffness float64) Config {
	return Config{Stiffness: stiffness, Damping: 2 * math.Sqrt(stiffness), Mass: 1}
}

func (c Config) mass() float64 {
	if c.Mass <= 0 {
		return 1
	}
	return c.Mass
}

// AngularFrequency returns sqrt(k/m).
func (c Config) AngularFrequency() float64 {
	if c.Stiffness <= 0 {
		return 0
	}
	return math.Sqrt(c.Stiffness / c.mass())
}

// DampingRatio returns c / (2 sqrt(k m)).
func (c Config) DampingRatio() float64 {
	if c.Stiffness <= 0 {
		return 1
	}
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.mass()))
	if math.Abs(zeta-1) < criticalTolerance {
		return 1
	}
	return zeta
}

// Overshoot returns the fractional overshoot of a step response:
// exp(-ζπ/sqrt(1-ζ²)) for ζ < 1 and 0 otherwise.
func (c Config) Overshoot() float64 {
	zeta := c.DampingRatio()
	if zeta >= 1 {
		return 0
	}
	return math.Exp(-zeta * math.Pi / math.Sqrt(1-zeta*zeta))
}

// Axis is one spring-driven value.
type Axis struct {
	Value    float64
	Velocity float64
	Target   float64

	cfg    Config
	dt     float64
	spring harmonica.Spring
}

// NewAxis creates an axis resting at value.
func NewAxis(cfg Config, value float64) *Axis {
	return &Axis{Value: value, Target: value, cfg: cfg}
}

// Config returns the axis spring config.
func (a *Axis) Config() Config {
	return a.cfg
}

// SetTarget moves the equilibrium point. The value follows on later ticks.
func (a *Axis) SetTarget(target float64) {
	a.Target = target
}

// Snap places the axis at rest on v.
func (a *Axis) Snap(v float64) {
	a.Value = v
	a.Target = v
	a.Velocity = 0
}

// Tick advances the oscillator by dt seconds. Coefficients are recomputed
// only when dt changes between calls.
func (a *Axis) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if dt != a.dt {
		a.spring = harmonica.NewSpring(dt, a.cfg.AngularFrequency(), a.cfg.DampingRatio())
		a.dt = dt
	}
	a.Value, a.Velocity = a.spring.Update(a.Value, a.Velocity, a.Target)
}

// Settled reports whether the axis is within eps of rest at its target.
func (a *Axis) Settled(eps float64) bool {
	return math.Abs(a.Value-a.Target) <= eps && math.Abs(a.Velocity) <= eps
}
