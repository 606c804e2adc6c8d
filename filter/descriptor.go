// Package filter describes the procedural refraction filter: fractal noise,
// desaturated, feeding a displacement map. Descriptors are plain values so
// they can be rendered to SVG markup, uploaded to a shader, or applied on
// the CPU.
package filter

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"sync"
)

// Default filter parameters.
const (
	DefaultSeed       = 7
	DefaultScale      = 6.0
	DefaultNumOctaves = 2
)

// DefaultFrequency is the base noise frequency (x, y) in cycles per pixel.
var DefaultFrequency = Frequency{X: 0.006, Y: 0.012}

// Frequency is a per-axis noise frequency.
type Frequency struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Channel selects a colour channel of the displacement map.
type Channel byte

const (
	ChannelR Channel = 'R'
	ChannelG Channel = 'G'
	ChannelB Channel = 'B'
	ChannelA Channel = 'A'
)

func (c Channel) index() int {
	switch c {
	case ChannelG:
		return 1
	case ChannelB:
		return 2
	case ChannelA:
		return 3
	default:
		return 0
	}
}

// Turbulence is the noise source.
type Turbulence struct {
	Type          string // "fractalNoise"
	BaseFrequency Frequency
	NumOctaves    int
	Seed          int64
}

// ColorMatrix is the saturation stage; Values 0 fully desaturates.
type ColorMatrix struct {
	Type   string // "saturate"
	Values float64
}

// Displacement moves source pixels by the map's channels times Scale.
type Displacement struct {
	In       string // "SourceGraphic"
	Scale    float64
	XChannel Channel
	YChannel Channel
}

// Descriptor is a complete filter definition.
type Descriptor struct {
	ID           string
	Turbulence   Turbulence
	ColorMatrix  ColorMatrix
	Displacement Displacement
}

// BuildDistortionFilter returns the refraction filter for the given seed,
// base frequency and displacement scale. Negative frequencies are treated
// as 0. The result has no ID; see Descriptor.WithID.
func BuildDistortionFilter(seed int64, baseFrequency Frequency, scale float64) Descriptor {
	return Descriptor{
		Turbulence: Turbulence{
			Type: "fractalNoise",
			BaseFrequency: Frequency{
				X: max(baseFrequency.X, 0),
				Y: max(baseFrequency.Y, 0),
			},
			NumOctaves: DefaultNumOctaves,
			Seed:       seed,
		},
		ColorMatrix: ColorMatrix{Type: "saturate", Values: 0},
		Displacement: Displacement{
			In:       "SourceGraphic",
			Scale:    scale,
			XChannel: ChannelR,
			YChannel: ChannelG,
		},
	}
}

// WithID returns a copy carrying id.
func (d Descriptor) WithID(id string) Descriptor {
	d.ID = id
	return d
}

// IDSource hands out filter identifiers that are unique for its lifetime.
type IDSource struct {
	mu     sync.Mutex
	prefix string
	next   uint64
}

// NewIDSource creates a source producing "<prefix>-1", "<prefix>-2", ...
func NewIDSource(prefix string) *IDSource {
	return &IDSource{prefix: prefix}
}

// Next returns a fresh identifier.
func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}

type xmlFilter struct {
	XMLName      xml.Name        `xml:"filter"`
	ID           string          `xml:"id,attr"`
	Turbulence   xmlTurbulence   `xml:"feTurbulence"`
	ColorMatrix  xmlColorMatrix  `xml:"feColorMatrix"`
	Displacement xmlDisplacement `xml:"feDisplacementMap"`
}

type xmlTurbulence struct {
	Type          string `xml:"type,attr"`
	BaseFrequency string `xml:"baseFrequency,attr"`
	NumOctaves    int    `xml:"numOctaves,attr"`
	Seed          int64  `xml:"seed,attr"`
}

type xmlColorMatrix struct {
	Type   string `xml:"type,attr"`
	Values string `xml:"values,attr"`
}

type xmlDisplacement struct {
	In       string `xml:"in,attr"`
	Scale    string `xml:"scale,attr"`
	XChannel string `xml:"xChannelSelector,attr"`
	YChannel string `xml:"yChannelSelector,attr"`
}

// Markup renders the descriptor as an SVG <filter> element.
func (d Descriptor) Markup() (string, error) {
	f := xmlFilter{
		ID: d.ID,
		Turbulence: xmlTurbulence{
			Type:          d.Turbulence.Type,
			BaseFrequency: formatFloat(d.Turbulence.BaseFrequency.X) + " " + formatFloat(d.Turbulence.BaseFrequency.Y),
			NumOctaves:    d.Turbulence.NumOctaves,
			Seed:          d.Turbulence.Seed,
		},
		ColorMatrix: xmlColorMatrix{
			Type:   d.ColorMatrix.Type,
			Values: formatFloat(d.ColorMatrix.Values),
		},
		Displacement: xmlDisplacement{
			In:       d.Displacement.In,
			Scale:    formatFloat(d.Displacement.Scale),
			XChannel: string(d.Displacement.XChannel),
			YChannel: string(d.Displacement.YChannel),
		},
	}
	out, err := xml.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("marshaling filter %q: %w", d.ID, err)
	}
	return string(out), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
