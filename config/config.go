// Package config provides configuration loading and access for the showcase.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/glass/ambient"
	"github.com/pthm-cable/glass/filter"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/spring"
	"github.com/pthm-cable/glass/surface"
	"github.com/pthm-cable/glass/tilt"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Widget kinds.
const (
	KindTilt       = "tilt"
	KindRefraction = "refraction"
	KindParallax   = "parallax"
)

// Config holds all showcase configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Motion     MotionConfig     `yaml:"motion"`
	Tilt       TiltConfig       `yaml:"tilt"`
	Shimmer    ShimmerConfig    `yaml:"shimmer"`
	Refraction RefractionConfig `yaml:"refraction"`
	Parallax   ParallaxConfig   `yaml:"parallax"`
	Ambient    AmbientConfig    `yaml:"ambient"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Widgets    []WidgetConfig   `yaml:"widgets"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	TargetFPS        int     `yaml:"target_fps"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio"` // 0 = ask the window
}

// MotionConfig holds capability settings.
type MotionConfig struct {
	LowPowerCores int  `yaml:"low_power_cores"` // <= this many cores is low power; 0 disables
	ReducedMotion bool `yaml:"reduced_motion"`  // initial preference
}

// SpringConfig holds spring parameters.
type SpringConfig struct {
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`
}

// TiltConfig holds shimmer-panel tilt parameters.
type TiltConfig struct {
	MaxTilt      float64      `yaml:"max_tilt"`       // degrees
	ScaleOnHover float64      `yaml:"scale_on_hover"` // hover scale target
	Perspective  float64      `yaml:"perspective"`
	Spring       SpringConfig `yaml:"spring"`
	Enabled      bool         `yaml:"enabled"`
	ContentDepth float64      `yaml:"content_depth"` // translateZ of the content layer
}

// ShimmerConfig holds the specular streak parameters.
type ShimmerConfig struct {
	Intensity    float64 `yaml:"intensity"`     // clamped to [0,1]
	CycleSeconds float64 `yaml:"cycle_seconds"` // one full sweep
}

// FrequencyConfig is a per-axis noise frequency.
type FrequencyConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RefractionConfig holds refraction card parameters.
type RefractionConfig struct {
	MaxTilt       float64         `yaml:"max_tilt"`
	ScaleOnHover  float64         `yaml:"scale_on_hover"`
	Spring        SpringConfig    `yaml:"spring"`
	Enabled       bool            `yaml:"enabled"`
	IDPrefix      string          `yaml:"id_prefix"`
	Seed          int64           `yaml:"seed"`
	BaseFrequency FrequencyConfig `yaml:"base_frequency"`
	Scale         float64         `yaml:"scale"` // displacement in pixels
	ImageDepth    float64         `yaml:"image_depth"`
	CaptionDepth  float64         `yaml:"caption_depth"`
	GlareDepth    float64         `yaml:"glare_depth"`
}

// ParallaxConfig holds pointer parallax parameters.
type ParallaxConfig struct {
	Max float64 `yaml:"max"` // largest offset in pixels
}

// AmbientConfig holds the background particle field parameters.
type AmbientConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Opacity       float64 `yaml:"opacity"`
	Count         int     `yaml:"count"`
	LowPowerCount int     `yaml:"low_power_count"`
	MinRadius     float64 `yaml:"min_radius"`
	MaxRadius     float64 `yaml:"max_radius"`
	MaxSpeed      float64 `yaml:"max_speed"`
	MinAlpha      float64 `yaml:"min_alpha"`
	MaxAlpha      float64 `yaml:"max_alpha"`
	Seed          int64   `yaml:"seed"` // 0 = time-based
}

// TelemetryConfig holds frame statistics settings.
type TelemetryConfig struct {
	Window    int    `yaml:"window"`     // frames per stats window
	OutputDir string `yaml:"output_dir"` // empty disables CSV output
}

// WidgetConfig places one surface in the showcase scene.
type WidgetConfig struct {
	Name    string  `yaml:"name"`
	Kind    string  `yaml:"kind"` // tilt, refraction or parallax
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	W       float64 `yaml:"w"`
	H       float64 `yaml:"h"`
	Caption string  `yaml:"caption"`
	Image   string  `yaml:"image"`   // optional image path for refraction cards
	Enabled *bool   `yaml:"enabled"` // overrides the section's enabled flag
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32
	ScreenH32    float32
	ShimmerCycle time.Duration
}

var global *Config

// Init loads configuration from the given path (or embedded defaults if empty)
// and sets it as the global config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. A widgets list replaces
		// the default scene entirely.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

func (c *Config) validate() error {
	for i, w := range c.Widgets {
		switch w.Kind {
		case KindTilt, KindRefraction, KindParallax:
		default:
			return fmt.Errorf("widget %d (%q): unknown kind %q", i, w.Name, w.Kind)
		}
		if w.W < 0 || w.H < 0 {
			return fmt.Errorf("widget %d (%q): negative size %gx%g", i, w.Name, w.W, w.H)
		}
	}
	if c.Motion.LowPowerCores < 0 {
		return fmt.Errorf("motion.low_power_cores must be >= 0, got %d", c.Motion.LowPowerCores)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.ShimmerCycle = time.Duration(c.Shimmer.CycleSeconds * float64(time.Second))
	if c.Derived.ShimmerCycle <= 0 {
		c.Derived.ShimmerCycle = surface.DefaultShimmerCycle
	}
}

// WriteYAML writes the config to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// MotionSettings returns the capability heuristic configuration.
func (c *Config) MotionSettings() motion.Config {
	return motion.Config{LowPowerCores: c.Motion.LowPowerCores}
}

func (s SpringConfig) spring() spring.Config {
	cfg := spring.Config{Stiffness: s.Stiffness, Damping: s.Damping, Mass: s.Mass}
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	return cfg
}

// TiltOptions returns options for a shimmer panel. enabled overrides the
// section default when non-nil.
func (c *Config) TiltOptions(enabled *bool) surface.TiltOptions {
	opts := surface.TiltOptions{
		Tilt: tilt.Options{
			MaxTilt:      c.Tilt.MaxTilt,
			ScaleOnHover: c.Tilt.ScaleOnHover,
			Perspective:  c.Tilt.Perspective,
			Spring:       c.Tilt.Spring.spring(),
		},
		Intensity:    c.Shimmer.Intensity,
		Cycle:        c.Derived.ShimmerCycle,
		Enabled:      c.Tilt.Enabled,
		ContentDepth: c.Tilt.ContentDepth,
	}
	if enabled != nil {
		opts.Enabled = *enabled
	}
	return opts
}

// RefractionOptions returns options for a refraction card. enabled overrides
// the section default when non-nil.
func (c *Config) RefractionOptions(enabled *bool) surface.RefractionOptions {
	r := c.Refraction
	opts := surface.RefractionOptions{
		Tilt: tilt.Options{
			MaxTilt:      r.MaxTilt,
			ScaleOnHover: r.ScaleOnHover,
			Perspective:  c.Tilt.Perspective,
			Spring:       r.Spring.spring(),
		},
		Enabled:       r.Enabled,
		Seed:          r.Seed,
		BaseFrequency: filter.Frequency{X: r.BaseFrequency.X, Y: r.BaseFrequency.Y},
		Scale:         r.Scale,
		ImageDepth:    r.ImageDepth,
		CaptionDepth:  r.CaptionDepth,
		GlareDepth:    r.GlareDepth,
	}
	if enabled != nil {
		opts.Enabled = *enabled
	}
	return opts
}

// AmbientOptions returns options for the background particle field.
func (c *Config) AmbientOptions() ambient.Options {
	a := c.Ambient
	return ambient.Options{
		Opacity:       a.Opacity,
		Count:         a.Count,
		LowPowerCount: a.LowPowerCount,
		MinRadius:     a.MinRadius,
		MaxRadius:     a.MaxRadius,
		MaxSpeed:      a.MaxSpeed,
		MinAlpha:      a.MinAlpha,
		MaxAlpha:      a.MaxAlpha,
		Seed:          a.Seed,
	}
}
