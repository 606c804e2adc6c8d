package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD       OverlayID = "hud"
	OverlayInspector OverlayID = "inspector"
	OverlayPerf      OverlayID = "perf"
	OverlayBounds    OverlayID = "bounds"
	OverlayPointer   OverlayID = "pointer"
	OverlayControls  OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "B"
	Category    string // "panels" or "debug"
	Default     bool
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID: OverlayHUD, Name: "HUD", Description: "Frame and loop counters",
		Key: rl.KeyH, KeyLabel: "H", Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayInspector, Name: "Inspector", Description: "Live state of the hovered widget",
		Key: rl.KeyI, KeyLabel: "I", Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayControls, Name: "Controls", Description: "Motion and lifecycle controls",
		Key: rl.KeyTab, KeyLabel: "Tab", Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Perf", Description: "Frame phase timings",
		Key: rl.KeyF, KeyLabel: "F", Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayBounds, Name: "Bounds", Description: "Widget hit boxes",
		Key: rl.KeyB, KeyLabel: "B", Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPointer, Name: "Pointer", Description: "Pointer crosshair",
		Key: rl.KeyP, KeyLabel: "P", Category: "debug",
	})
}

// Register adds an overlay to the registry in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on or off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	if _, ok := r.byID[id]; ok {
		r.enabled[id] = enabled
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}
