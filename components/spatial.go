package components

import "github.com/pthm-cable/glass/viewport"

// Bounds is a widget's rectangle in viewport coordinates.
type Bounds struct {
	viewport.Rect
}

// Hover tracks whether the pointer is over a widget.
type Hover struct {
	Inside bool
	X, Y   float64 // last box-relative pointer position
}
