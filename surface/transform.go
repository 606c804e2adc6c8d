// Package surface composes tilt springs, shimmer and refraction into the
// per-frame render state of decorative glass surfaces.
package surface

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/glass/tilt"
)

// DefaultPerspective is the viewer distance used by every surface.
const DefaultPerspective = 1000.0

// Transform is a 3D pose: rotate about X then Y, uniform scale, lift along Z,
// viewed through a perspective of the given distance. Angles are degrees.
type Transform struct {
	Perspective float64
	RotateX     float64
	RotateY     float64
	Scale       float64
	TranslateZ  float64
}

// Identity returns the rest pose for a perspective distance.
func Identity(perspective float64) Transform {
	return Transform{Perspective: perspective, Scale: 1}
}

// FromState builds a transform from a tilt state.
func FromState(s tilt.State, perspective, depth float64) Transform {
	return Transform{
		Perspective: perspective,
		RotateX:     s.RotateX,
		RotateY:     s.RotateY,
		Scale:       s.Scale,
		TranslateZ:  depth,
	}
}

// IsIdentity reports whether the pose leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t.RotateX == 0 && t.RotateY == 0 && t.Scale == 1 && t.TranslateZ == 0
}

// AtDepth returns a copy lifted to z.
func (t Transform) AtDepth(z float64) Transform {
	t.TranslateZ = z
	return t
}

// Matrix returns the 4×4 model matrix T(z)·Rx·Ry·S for column vectors,
// using the CSS convention (y down, z towards the viewer).
func (t Transform) Matrix() *mat.Dense {
	ax := t.RotateX * math.Pi / 180
	ay := t.RotateY * math.Pi / 180
	sx, cx := math.Sincos(ax)
	sy, cy := math.Sincos(ay)

	translate := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, t.TranslateZ,
		0, 0, 0, 1,
	})
	rotX := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, cx, -sx, 0,
		0, sx, cx, 0,
		0, 0, 0, 1,
	})
	rotY := mat.NewDense(4, 4, []float64{
		cy, 0, sy, 0,
		0, 1, 0, 0,
		-sy, 0, cy, 0,
		0, 0, 0, 1,
	})
	scale := mat.NewDense(4, 4, []float64{
		t.Scale, 0, 0, 0,
		0, t.Scale, 0, 0,
		0, 0, t.Scale, 0,
		0, 0, 0, 1,
	})

	var tr, trr, m mat.Dense
	tr.Mul(translate, rotX)
	trr.Mul(&tr, rotY)
	m.Mul(&trr, scale)
	return &m
}

// Project maps a point of a w×h box (origin top-left) through the pose and
// the perspective, returning box coordinates. The pose pivots on the box centre.
func (t Transform) Project(x, y, w, h float64) (px, py float64) {
	return t.project(t.Matrix(), x, y, w, h)
}

// Corners projects the four corners of a w×h box in clockwise order from the
// top-left.
func (t Transform) Corners(w, h float64) [4][2]float64 {
	m := t.Matrix()
	var out [4][2]float64
	for i, c := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		out[i][0], out[i][1] = t.project(m, c[0], c[1], w, h)
	}
	return out
}

func (t Transform) project(m *mat.Dense, x, y, w, h float64) (px, py float64) {
	p := mat.NewVecDense(4, []float64{x - w/2, y - h/2, 0, 1})
	var q mat.VecDense
	q.MulVec(m, p)

	f := 1.0
	if t.Perspective > 0 {
		denom := t.Perspective - q.AtVec(2)
		if denom > 1e-6 {
			f = t.Perspective / denom
		}
	}
	return q.AtVec(0)*f + w/2, q.AtVec(1)*f + h/2
}
