// Package viewport models the global window the effects live in: its size,
// device pixel ratio, and the pointer/resize events dispatched to listeners.
package viewport

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the centre of the box.
func (r Rect) Center() (cx, cy float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains reports whether (x, y) lies inside the box (right/bottom edges exclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Local converts viewport coordinates to coordinates relative to the box origin.
func (r Rect) Local(x, y float64) (lx, ly float64) {
	return x - r.X, y - r.Y
}

// Viewport holds window state and listener registries.
// Listener maps are keyed by registration id so removal is O(1) and stable
// while a dispatch is in progress.
type Viewport struct {
	width, height float64
	dpr           float64

	pointerX, pointerY float64

	nextID  uint64
	pointer map[uint64]func(x, y float64)
	resize  map[uint64]func(w, h float64)
}

// New creates a viewport of the given logical size with a DPR of 1.
func New(width, height float64) *Viewport {
	return &Viewport{
		width:   width,
		height:  height,
		dpr:     1,
		pointer: make(map[uint64]func(x, y float64)),
		resize:  make(map[uint64]func(w, h float64)),
	}
}

// Size returns the logical viewport size.
func (v *Viewport) Size() (w, h float64) {
	return v.width, v.height
}

// DevicePixelRatio returns physical pixels per logical pixel.
func (v *Viewport) DevicePixelRatio() float64 {
	return v.dpr
}

// SetDevicePixelRatio updates the DPR. Non-positive values reset it to 1.
func (v *Viewport) SetDevicePixelRatio(dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	v.dpr = dpr
}

// Pointer returns the last dispatched pointer position.
func (v *Viewport) Pointer() (x, y float64) {
	return v.pointerX, v.pointerY
}

// OnPointerMove registers fn for every global pointer move.
func (v *Viewport) OnPointerMove(fn func(x, y float64)) (remove func()) {
	v.nextID++
	id := v.nextID
	v.pointer[id] = fn
	return func() { delete(v.pointer, id) }
}

// OnResize registers fn for every resize.
func (v *Viewport) OnResize(fn func(w, h float64)) (remove func()) {
	v.nextID++
	id := v.nextID
	v.resize[id] = fn
	return func() { delete(v.resize, id) }
}

// DispatchPointerMove records the pointer position and notifies listeners.
func (v *Viewport) DispatchPointerMove(x, y float64) {
	v.pointerX, v.pointerY = x, y
	for _, fn := range v.snapshotPointer() {
		fn(x, y)
	}
}

// Resize changes the logical size and notifies listeners. Equal sizes are ignored.
func (v *Viewport) Resize(w, h float64) {
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	for _, fn := range v.snapshotResize() {
		fn(w, h)
	}
}

// Listeners returns the number of registered pointer and resize listeners.
func (v *Viewport) Listeners() (pointer, resize int) {
	return len(v.pointer), len(v.resize)
}

// snapshot lets listeners remove themselves during dispatch.
func (v *Viewport) snapshotPointer() []func(x, y float64) {
	fns := make([]func(x, y float64), 0, len(v.pointer))
	for _, fn := range v.pointer {
		fns = append(fns, fn)
	}
	return fns
}

func (v *Viewport) snapshotResize() []func(w, h float64) {
	fns := make([]func(w, h float64), 0, len(v.resize))
	for _, fn := range v.resize {
		fns = append(fns, fn)
	}
	return fns
}
