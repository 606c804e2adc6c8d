package filter

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// channelSeedStride decorrelates the per-channel noise generators.
const channelSeedStride = 7919

// Rec. 709 luma weights used by saturate(0).
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// Field is a 4-channel map with values in [0,1], row-major.
type Field struct {
	W, H int
	Pix  [][4]float64
}

// At returns the channel values at (x, y), clamped to the field edges.
func (f *Field) At(x, y int) [4]float64 {
	x = min(max(x, 0), f.W-1)
	y = min(max(y, 0), f.H-1)
	return f.Pix[y*f.W+x]
}

// Field evaluates fractal noise for every pixel of a w×h region. Each
// channel has its own generator derived from the seed; octaves double the
// frequency and halve the amplitude, and the sum is mapped to [0,1].
func (t Turbulence) Field(w, h int) *Field {
	f := &Field{W: w, H: h, Pix: make([][4]float64, w*h)}
	if w <= 0 || h <= 0 {
		return f
	}
	octaves := max(t.NumOctaves, 1)

	var gens [4]opensimplex.Noise
	for c := range gens {
		gens[c] = opensimplex.New(t.Seed + int64(c)*channelSeedStride)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var px [4]float64
			for c, gen := range gens {
				sum, amp := 0.0, 1.0
				fx, fy := t.BaseFrequency.X, t.BaseFrequency.Y
				for o := 0; o < octaves; o++ {
					sum += gen.Eval2(float64(x)*fx, float64(y)*fy) * amp
					fx *= 2
					fy *= 2
					amp *= 0.5
				}
				px[c] = clamp01((sum + 1) / 2)
			}
			f.Pix[y*w+x] = px
		}
	}
	return f
}

// Desaturate applies the colour matrix stage in place.
func (m ColorMatrix) Desaturate(f *Field) {
	if m.Type != "saturate" {
		return
	}
	s := clamp01(m.Values)
	for i, p := range f.Pix {
		l := lumaR*p[0] + lumaG*p[1] + lumaB*p[2]
		f.Pix[i] = [4]float64{
			l + (p[0]-l)*s,
			l + (p[1]-l)*s,
			l + (p[2]-l)*s,
			p[3],
		}
	}
}

// DisplacementMap builds the desaturated noise map for a w×h region.
func (d Descriptor) DisplacementMap(w, h int) *Field {
	f := d.Turbulence.Field(w, h)
	d.ColorMatrix.Desaturate(f)
	return f
}

// Apply renders src through the filter. src is not modified; pixels
// displaced from outside the source are transparent.
func Apply(d Descriptor, src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	in := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(in, in.Bounds(), src, b.Min, draw.Src)

	dm := d.DisplacementMap(w, h)
	return Displace(in, dm, d.Displacement)
}

// Displace moves pixels of in by the map: P'(x,y) = P(x + s·(X-½), y + s·(Y-½)).
func Displace(in *image.NRGBA, dm *Field, disp Displacement) *image.NRGBA {
	b := in.Bounds()
	out := image.NewNRGBA(b)
	xc, yc := disp.XChannel.index(), disp.YChannel.index()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := dm.At(x-b.Min.X, y-b.Min.Y)
			sx := int(math.Round(float64(x) + disp.Scale*(m[xc]-0.5)))
			sy := int(math.Round(float64(y) + disp.Scale*(m[yc]-0.5)))
			if !(image.Point{sx, sy}.In(b)) {
				out.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			out.SetNRGBA(x, y, in.NRGBAAt(sx, sy))
		}
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
