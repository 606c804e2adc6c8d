// Package scene holds the showcase widgets in an ECS world, routes pointer
// events to them, and drives their shared frame loop.
package scene

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/glass/ambient"
	"github.com/pthm-cable/glass/canvas"
	"github.com/pthm-cable/glass/components"
	"github.com/pthm-cable/glass/config"
	"github.com/pthm-cable/glass/filter"
	"github.com/pthm-cable/glass/frame"
	"github.com/pthm-cable/glass/motion"
	"github.com/pthm-cable/glass/parallax"
	"github.com/pthm-cable/glass/surface"
	"github.com/pthm-cable/glass/telemetry"
	"github.com/pthm-cable/glass/viewport"
)

// ambientOwner is the frame-loop owner name of the background field.
const ambientOwner = "ambient"

// Options configures a Scene.
type Options struct {
	Config     *config.Config
	Viewport   *viewport.Viewport
	Preference motion.MediaQuery // reduced-motion source; nil fails open

	// Concurrency overrides the core-count probe. Nil uses the Go runtime.
	Concurrency func() (int, bool)

	// Backdrop hosts the ambient field. Nil draws into an in-memory raster
	// covering the viewport.
	Backdrop ambient.Container

	// OnWindow receives each completed telemetry window.
	OnWindow func(telemetry.WindowStats)
}

// View is the render state of one widget for the current frame.
type View struct {
	Name    string
	Kind    components.Kind
	Bounds  viewport.Rect
	Caption string
	Image   string
	Hovered bool

	Tilt       surface.TiltRender       // KindTilt
	Refraction surface.RefractionRender // KindRefraction
	Parallax   parallax.Offset          // KindParallax
}

// Scene owns the widget world.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Widget, components.Bounds, components.Hover, components.Effect]
	filter *ecs.Filter4[components.Widget, components.Bounds, components.Hover, components.Effect]

	vp        *viewport.Viewport
	env       motion.Environment
	tracker   *telemetry.Tracker
	collector *telemetry.Collector
	onWindow  func(telemetry.WindowStats)

	ambient  *ambient.Animator
	backdrop ambient.Container

	entities      []ecs.Entity // creation order
	removePointer func()
	mounted       bool
}

// New builds the widget world described by opts.Config. Nothing animates
// until Mount.
func New(opts Options) (*Scene, error) {
	cfg := opts.Config
	if cfg == nil || opts.Viewport == nil {
		return nil, fmt.Errorf("scene: config and viewport are required")
	}

	env := motion.HostEnvironment(opts.Preference)
	if opts.Concurrency != nil {
		env.Concurrency = opts.Concurrency
	}

	world := ecs.NewWorld()
	s := &Scene{
		world:     world,
		mapper:    ecs.NewMap4[components.Widget, components.Bounds, components.Hover, components.Effect](world),
		filter:    ecs.NewFilter4[components.Widget, components.Bounds, components.Hover, components.Effect](world),
		vp:        opts.Viewport,
		env:       env,
		tracker:   telemetry.NewTracker(frame.NewLoop()),
		collector: telemetry.NewCollector(cfg.Telemetry.Window),
		onWindow:  opts.OnWindow,
	}

	ids := filter.NewIDSource(cfg.Refraction.IDPrefix)
	seen := make(map[string]bool, len(cfg.Widgets))
	for i, wc := range cfg.Widgets {
		if wc.Name == "" || wc.Name == ambientOwner || seen[wc.Name] {
			return nil, fmt.Errorf("scene: widget %d has missing or duplicate name %q", i, wc.Name)
		}
		seen[wc.Name] = true

		kind, ok := components.ParseKind(wc.Kind)
		if !ok {
			return nil, fmt.Errorf("scene: widget %q: unknown kind %q", wc.Name, wc.Kind)
		}
		rect := viewport.Rect{X: wc.X, Y: wc.Y, W: wc.W, H: wc.H}
		sched := s.tracker.For(wc.Name)

		var effect components.Effect
		switch kind {
		case components.KindTilt:
			effect.Tilt = surface.NewTiltSurface(sched, env, cfg.MotionSettings(), cfg.TiltOptions(wc.Enabled))
		case components.KindRefraction:
			effect.Refraction = surface.NewRefractionSurface(sched, env, cfg.MotionSettings(), ids, cfg.RefractionOptions(wc.Enabled))
		case components.KindParallax:
			effect.Parallax = parallax.NewController(s.vp, sched, env, cfg.MotionSettings(), func() viewport.Rect { return rect }, cfg.Parallax.Max)
		}

		widget := components.Widget{Name: wc.Name, Kind: kind, Caption: wc.Caption, Image: wc.Image, Order: i}
		bounds := components.Bounds{Rect: rect}
		hover := components.Hover{}
		s.entities = append(s.entities, s.mapper.NewEntity(&widget, &bounds, &hover, &effect))
	}

	if cfg.Ambient.Enabled {
		s.backdrop = opts.Backdrop
		if s.backdrop == nil {
			s.backdrop = &rasterBackdrop{vp: s.vp}
		}
		s.ambient = ambient.NewAnimator(s.backdrop, s.vp, s.tracker.For(ambientOwner), env, cfg.MotionSettings(), cfg.AmbientOptions())
	}

	slog.Debug("scene built", "widgets", len(s.entities), "ambient", s.ambient != nil)
	return s, nil
}

// Mount starts every effect and begins routing pointer events.
func (s *Scene) Mount() {
	if s.mounted {
		return
	}
	s.mounted = true

	s.removePointer = s.vp.OnPointerMove(s.onPointerMove)

	query := s.filter.Query()
	for query.Next() {
		w, _, _, e := query.Get()
		s.tracker.Revive(w.Name)
		e.Mount()
	}
	if s.ambient != nil {
		s.tracker.Revive(ambientOwner)
		s.ambient.Start()
	}
}

// Unmount stops every effect. Any frame still requested afterwards is
// reported by telemetry as leaked.
func (s *Scene) Unmount() {
	if !s.mounted {
		return
	}
	s.mounted = false

	if s.removePointer != nil {
		s.removePointer()
		s.removePointer = nil
	}

	query := s.filter.Query()
	for query.Next() {
		w, _, h, e := query.Get()
		e.Unmount()
		*h = components.Hover{}
		s.tracker.Retire(w.Name)
	}
	if s.ambient != nil {
		s.ambient.Stop()
		s.tracker.Retire(ambientOwner)
	}
}

// Mounted reports whether the scene is running.
func (s *Scene) Mounted() bool {
	return s.mounted
}

// Step runs one frame of the shared loop at timestamp now.
func (s *Scene) Step(now time.Duration) telemetry.FrameSample {
	sample := s.tracker.Step(now)
	s.collector.Record(sample)
	if s.collector.ShouldFlush() {
		stats := s.collector.Flush()
		if s.onWindow != nil {
			s.onWindow(stats)
		}
	}
	return sample
}

// Views returns the render state of every widget in draw order.
func (s *Scene) Views() []View {
	views := make([]View, 0, len(s.entities))
	for _, e := range s.entities {
		w, b, h, fx := s.mapper.Get(e)
		v := View{
			Name:    w.Name,
			Kind:    w.Kind,
			Bounds:  b.Rect,
			Caption: w.Caption,
			Image:   w.Image,
			Hovered: h.Inside,
		}
		switch {
		case fx.Tilt != nil:
			v.Tilt = fx.Tilt.Render()
		case fx.Refraction != nil:
			v.Refraction = fx.Refraction.Render()
		case fx.Parallax != nil:
			v.Parallax = fx.Parallax.Offset()
		}
		views = append(views, v)
	}
	return views
}

// View returns the named widget's render state.
func (s *Scene) View(name string) (View, bool) {
	for _, v := range s.Views() {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// Hovered returns the topmost widget under the pointer.
func (s *Scene) Hovered() (View, bool) {
	views := s.Views()
	for i := len(views) - 1; i >= 0; i-- {
		if views[i].Hovered {
			return views[i], true
		}
	}
	return View{}, false
}

// Effect returns the named widget's effect instance.
func (s *Scene) Effect(name string) (*components.Effect, bool) {
	for _, e := range s.entities {
		w, _, _, fx := s.mapper.Get(e)
		if w.Name == name {
			return fx, true
		}
	}
	return nil, false
}

// Ambient returns the background animator, or nil when disabled.
func (s *Scene) Ambient() *ambient.Animator {
	return s.ambient
}

// Backdrop returns the ambient field's container, or nil when disabled.
func (s *Scene) Backdrop() ambient.Container {
	return s.backdrop
}

// Tracker exposes frame-loop accounting.
func (s *Scene) Tracker() *telemetry.Tracker {
	return s.tracker
}

// Len returns the number of widgets.
func (s *Scene) Len() int {
	return len(s.entities)
}

// onPointerMove hit-tests every widget and emits enter, move and leave.
func (s *Scene) onPointerMove(x, y float64) {
	s.collector.RecordPointerEvent()

	query := s.filter.Query()
	for query.Next() {
		_, b, h, fx := query.Get()
		inside := b.Contains(x, y)
		lx, ly := b.Local(x, y)

		switch {
		case inside && !h.Inside:
			fx.PointerEnter(lx, ly, b.W, b.H)
		case inside:
			fx.PointerMove(lx, ly, b.W, b.H)
		case h.Inside:
			fx.PointerLeave()
		}
		h.Inside = inside
		if inside {
			h.X, h.Y = lx, ly
		}
	}
}

// rasterBackdrop is a full-viewport container drawing on the CPU.
type rasterBackdrop struct {
	vp     *viewport.Viewport
	raster *canvas.Raster
}

func (b *rasterBackdrop) Size() (float64, float64) {
	return b.vp.Size()
}

func (b *rasterBackdrop) Context() ambient.Canvas {
	if b.raster == nil {
		b.raster = canvas.NewRaster(0, 0, 1)
	}
	return b.raster
}

// Raster returns the backing raster, or nil before the first draw.
func (b *rasterBackdrop) Raster() *canvas.Raster {
	return b.raster
}
