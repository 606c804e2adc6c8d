// Package canvas provides a CPU raster drawing surface. It backs the ambient
// field in headless runs and tests, and produces reference frames for the
// GPU renderers.
package canvas

import (
	"image"
	"math"
)

// Raster is an RGBA (premultiplied) backing store with a logical-to-physical scale.
type Raster struct {
	img   *image.RGBA
	scale float64
}

// NewRaster creates a raster of pxW×pxH physical pixels.
func NewRaster(pxW, pxH int, scale float64) *Raster {
	r := &Raster{}
	r.Resize(pxW, pxH, scale)
	return r
}

// Resize reallocates the backing store. Contents are discarded, as with a
// resized HTML canvas.
func (r *Raster) Resize(pxW, pxH int, scale float64) {
	if pxW < 0 {
		pxW = 0
	}
	if pxH < 0 {
		pxH = 0
	}
	if scale <= 0 {
		scale = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, pxW, pxH))
	r.scale = scale
}

// Clear makes every pixel transparent.
func (r *Raster) Clear() {
	clear(r.img.Pix)
}

// FillRadialGradient composites a white radial gradient over the raster.
// Alpha falls linearly from alpha at the centre to 0 at radius. Inputs are
// logical pixels.
func (r *Raster) FillRadialGradient(x, y, radius, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	alpha = math.Min(alpha, 1)
	s := r.scale
	cx, cy, pr := x*s, y*s, radius*s

	b := r.img.Bounds()
	x0 := max(b.Min.X, int(math.Floor(cx-pr)))
	x1 := min(b.Max.X, int(math.Ceil(cx+pr)))
	y0 := max(b.Min.Y, int(math.Floor(cy-pr)))
	y1 := min(b.Max.Y, int(math.Ceil(cy+pr)))

	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - cy
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - cx
			d := math.Sqrt(dx*dx + dy*dy)
			if d >= pr {
				continue
			}
			a := alpha * (1 - d/pr)
			i := r.img.PixOffset(px, py)
			pix := r.img.Pix[i : i+4 : i+4]
			// Premultiplied source-over with a white source.
			src := a * 255
			for c := 0; c < 4; c++ {
				pix[c] = uint8(math.Round(src + float64(pix[c])*(1-a)))
			}
		}
	}
}

// Image returns the backing image. It is reallocated on Resize.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Size returns the physical size in pixels.
func (r *Raster) Size() (w, h int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

// Scale returns the logical-to-physical scale.
func (r *Raster) Scale() float64 {
	return r.scale
}

// AlphaAt returns the alpha at a physical pixel, or 0 outside the raster.
func (r *Raster) AlphaAt(px, py int) uint8 {
	if !(image.Point{px, py}.In(r.img.Bounds())) {
		return 0
	}
	return r.img.RGBAAt(px, py).A
}

// NonBlank reports whether any pixel has non-zero alpha.
func (r *Raster) NonBlank() bool {
	for i := 3; i < len(r.img.Pix); i += 4 {
		if r.img.Pix[i] != 0 {
			return true
		}
	}
	return false
}
