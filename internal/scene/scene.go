// Package scene models the animated page backgrounds: particle layers,
// floating shapes and a scroll-following camera, advanced by an explicit
// animation driver so the same scene can be streamed to a browser, rendered
// to a poster or previewed in a terminal.
package scene

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spec is the static description of a scene.
type Spec struct {
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Camera     CameraConfig  `json:"camera"`
	Lights     []Light       `json:"lights"`
	Layers     []LayerConfig `json:"layers"`
	Shapes     []ShapeConfig `json:"shapes"`
	Scroll     ScrollConfig  `json:"scroll"`
	Background Gradient      `json:"background"`
}

// Options control a single mount.
type Options struct {
	// Capable reports whether the host can render 3D at all. A scene mounted
	// without capability renders nothing.
	Capable bool
	// Rand overrides the generator used for the particle field.
	Rand   *rand.Rand
	Logger *zap.Logger
}

// Scene is one mounted instance of a Spec.
type Scene struct {
	id       string
	spec     Spec
	degraded bool

	camera *Camera
	layers []*Layer
	shapes []*Shape
	scroll *ScrollSignal
	driver *Driver
	logger *zap.Logger
}

// Mount builds the scene's buffers once and registers every element with a
// fresh driver. It never fails: without capability the scene is degraded and
// has no elements.
func Mount(spec Spec, opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scene{
		id:     uuid.NewString(),
		spec:   spec,
		scroll: &ScrollSignal{},
		logger: logger.With(zap.String("scene", spec.Name)),
	}
	s.driver = NewDriver(s.scroll, s.logger)
	s.camera = newCamera(spec.Camera, spec.Scroll)
	if !opts.Capable {
		s.degraded = true
		s.logger.Debug("host cannot render, mounting degraded scene")
		return s
	}

	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	s.driver.Register(s.camera)
	for _, cfg := range spec.Layers {
		l := GenerateLayer(cfg, rng)
		l.scroll = spec.Scroll
		s.layers = append(s.layers, l)
		s.driver.Register(l)
	}
	for _, cfg := range spec.Shapes {
		sh := NewShape(cfg)
		s.shapes = append(s.shapes, sh)
		s.driver.Register(sh)
	}
	s.logger.Debug("scene mounted", zap.Int("layers", len(s.layers)), zap.Int("shapes", len(s.shapes)))
	return s
}

func (s *Scene) ID() string              { return s.id }
func (s *Scene) Spec() Spec              { return s.spec }
func (s *Scene) Degraded() bool          { return s.degraded }
func (s *Scene) Camera() *Camera         { return s.camera }
func (s *Scene) Layers() []*Layer        { return s.layers }
func (s *Scene) Shapes() []*Shape        { return s.shapes }
func (s *Scene) Scroll() *ScrollSignal   { return s.scroll }
func (s *Scene) Driver() *Driver         { return s.driver }
func (s *Scene) Background() Gradient    { return s.spec.Background }
func (s *Scene) Mounted() bool           { return !s.driver.Stopped() }

// Step advances the scene by one synthetic tick.
func (s *Scene) Step(delta time.Duration) bool {
	return s.driver.Step(delta)
}

// Run drives the scene from src until ctx is done or the scene is unmounted.
// A degraded scene has nothing to animate and returns immediately.
func (s *Scene) Run(ctx context.Context, src FrameSource) error {
	if s.degraded {
		src.Stop()
		return nil
	}
	return s.driver.Run(ctx, src)
}

// Unmount stops the frame loop. It is safe to call more than once.
func (s *Scene) Unmount() {
	if s.driver.Stopped() {
		return
	}
	s.driver.Stop()
	s.logger.Debug("scene unmounted", zap.Uint64("frames", s.driver.Frames()))
}
