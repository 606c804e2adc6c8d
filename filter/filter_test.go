package filter

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"sync"
	"testing"
)

func checker(w, h, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 20, G: 40, B: 80, A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.NRGBA{R: 240, G: 230, B: 200, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestBuildDistortionFilterDefaults(t *testing.T) {
	d := BuildDistortionFilter(DefaultSeed, DefaultFrequency, DefaultScale)

	if d.Turbulence.Type != "fractalNoise" || d.Turbulence.NumOctaves != 2 || d.Turbulence.Seed != 7 {
		t.Errorf("unexpected turbulence %+v", d.Turbulence)
	}
	if d.Turbulence.BaseFrequency != (Frequency{0.006, 0.012}) {
		t.Errorf("unexpected base frequency %+v", d.Turbulence.BaseFrequency)
	}
	if d.ColorMatrix.Type != "saturate" || d.ColorMatrix.Values != 0 {
		t.Errorf("unexpected colour matrix %+v", d.ColorMatrix)
	}
	if d.Displacement.Scale != 6 || d.Displacement.XChannel != ChannelR || d.Displacement.YChannel != ChannelG {
		t.Errorf("unexpected displacement %+v", d.Displacement)
	}
	if d.ID != "" {
		t.Errorf("expected no id from the pure builder, got %q", d.ID)
	}
}

func TestBuildDistortionFilterIsPure(t *testing.T) {
	a := BuildDistortionFilter(3, Frequency{0.01, 0.01}, 4)
	b := BuildDistortionFilter(3, Frequency{0.01, 0.01}, 4)
	if a != b {
		t.Errorf("same inputs produced different descriptors: %+v vs %+v", a, b)
	}
	neg := BuildDistortionFilter(3, Frequency{-1, 0.01}, 4)
	if neg.Turbulence.BaseFrequency.X != 0 {
		t.Errorf("expected negative frequency to clamp to 0, got %f", neg.Turbulence.BaseFrequency.X)
	}
}

func TestMarkup(t *testing.T) {
	d := BuildDistortionFilter(7, DefaultFrequency, 6).WithID("refract-1")
	got, err := d.Markup()
	if err != nil {
		t.Fatalf("Markup() error: %v", err)
	}
	for _, want := range []string{
		`<filter id="refract-1">`,
		`<feTurbulence type="fractalNoise" baseFrequency="0.006 0.012" numOctaves="2" seed="7">`,
		`<feColorMatrix type="saturate" values="0">`,
		`<feDisplacementMap in="SourceGraphic" scale="6" xChannelSelector="R" yChannelSelector="G">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("markup missing %q:\n%s", want, got)
		}
	}
}

func TestIDSourceUnique(t *testing.T) {
	ids := NewIDSource("refract")
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := ids.Next()
				mu.Lock()
				if seen[id] {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if len(seen) != 800 {
		t.Errorf("expected 800 ids, got %d", len(seen))
	}
}

func TestDesaturatedMapIsGrey(t *testing.T) {
	d := BuildDistortionFilter(7, DefaultFrequency, 6)
	dm := d.DisplacementMap(32, 32)
	for i, p := range dm.Pix {
		if p[0] != p[1] || p[1] != p[2] {
			t.Fatalf("pixel %d not grey after saturate(0): %v", i, p)
		}
		for _, v := range p {
			if v < 0 || v > 1 {
				t.Fatalf("pixel %d out of range: %v", i, p)
			}
		}
	}
}

func TestZeroScaleIsIdentity(t *testing.T) {
	src := checker(40, 30, 3)
	out := Apply(BuildDistortionFilter(7, DefaultFrequency, 0), src)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Error("scale 0 should leave the image unchanged")
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	src := checker(48, 48, 2)
	orig := append([]uint8(nil), src.Pix...)
	Apply(BuildDistortionFilter(7, Frequency{0.05, 0.05}, 20), src)
	if !bytes.Equal(src.Pix, orig) {
		t.Error("Apply modified its source image")
	}
}

func TestApplyDeterministic(t *testing.T) {
	src := checker(48, 48, 2)
	d := BuildDistortionFilter(11, Frequency{0.05, 0.05}, 20)
	a := Apply(d, src)
	b := Apply(d, src)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("same descriptor rendered different outputs")
	}
}

func TestInstancesIndependent(t *testing.T) {
	ids := NewIDSource("refract")
	src := checker(64, 64, 2)
	first := BuildDistortionFilter(1, Frequency{0.05, 0.05}, 40).WithID(ids.Next())
	second := BuildDistortionFilter(2, Frequency{0.05, 0.05}, 40).WithID(ids.Next())

	if first.ID == second.ID {
		t.Fatalf("instances share filter id %q", first.ID)
	}

	before := Apply(second, src)
	distorted := Apply(first, src)
	after := Apply(second, src)

	if !bytes.Equal(before.Pix, after.Pix) {
		t.Error("rendering one instance changed another instance's output")
	}
	if bytes.Equal(distorted.Pix, after.Pix) {
		t.Error("expected different seeds to distort differently")
	}
}

func TestFieldEmpty(t *testing.T) {
	f := Turbulence{NumOctaves: 2}.Field(0, 10)
	if len(f.Pix) != 0 {
		t.Errorf("expected empty field, got %d pixels", len(f.Pix))
	}
}
