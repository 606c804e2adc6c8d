// Package main provides CMA-ES tuning for the tilt and refraction springs.
package main

import (
	"github.com/pthm-cable/glass/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "tilt_stiffness", Path: "tilt.spring.stiffness", Min: 50, Max: 1000, Default: 300},
			{Name: "tilt_damping", Path: "tilt.spring.damping", Min: 5, Max: 80, Default: 25},
			{Name: "refraction_stiffness", Path: "refraction.spring.stiffness", Min: 50, Max: 1000, Default: 300},
			{Name: "refraction_damping", Path: "refraction.spring.damping", Min: 5, Max: 80, Default: 25},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg. Order must match
// Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Tilt.Spring.Stiffness = clamped[0]
	cfg.Tilt.Spring.Damping = clamped[1]
	cfg.Refraction.Spring.Stiffness = clamped[2]
	cfg.Refraction.Spring.Damping = clamped[3]
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Tilt.Spring.Stiffness,
		cfg.Tilt.Spring.Damping,
		cfg.Refraction.Spring.Stiffness,
		cfg.Refraction.Spring.Damping,
	}
}
