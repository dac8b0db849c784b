package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Descriptor is everything a client renderer needs once per mount: the
// immutable buffers and the static parts of the scene.
type Descriptor struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Title      string        `json:"title"`
	Degraded   bool          `json:"degraded"`
	Background string        `json:"background"`
	Camera     CameraConfig  `json:"camera"`
	Lights     []LightInfo   `json:"lights"`
	Layers     []LayerBuffer `json:"layers"`
	Shapes     []ShapeInfo   `json:"shapes"`
}

type LightInfo struct {
	Light
	Color string `json:"color"`
}

type LayerBuffer struct {
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Opacity   float32   `json:"opacity"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
	Sizes     []float32 `json:"sizes"`
}

type ShapeInfo struct {
	Name      string    `json:"name"`
	Kind      ShapeKind `json:"kind"`
	Color     string    `json:"color"`
	Scale     float32   `json:"scale"`
	Wireframe bool      `json:"wireframe"`
}

// Frame is the per-tick transform state of a scene.
type Frame struct {
	Seq     uint64           `json:"seq"`
	Elapsed float64          `json:"elapsed"`
	Scroll  float64          `json:"scroll"`
	Camera  CameraTransform  `json:"camera"`
	Layers  []LayerTransform `json:"layers"`
	Shapes  []ShapeTransform `json:"shapes"`
}

type CameraTransform struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
}

type LayerTransform struct {
	Rotation mgl32.Vec3 `json:"rotation"`
	Offset   mgl32.Vec3 `json:"offset"`
}

type ShapeTransform struct {
	Rotation mgl32.Vec3 `json:"rotation"`
	Position mgl32.Vec3 `json:"position"`
	Scale    float32    `json:"scale"`
}

func (s *Scene) Descriptor() Descriptor {
	d := Descriptor{
		ID:         s.id,
		Name:       s.spec.Name,
		Title:      s.spec.Title,
		Degraded:   s.degraded,
		Background: s.spec.Background.CSS(),
		Camera:     s.camera.Config(),
		Lights:     []LightInfo{},
		Layers:     []LayerBuffer{},
		Shapes:     []ShapeInfo{},
	}
	if s.degraded {
		return d
	}
	for _, l := range s.spec.Lights {
		d.Lights = append(d.Lights, LightInfo{Light: l, Color: Hex(l.Color)})
	}
	for _, l := range s.layers {
		pos, col := l.Flatten()
		d.Layers = append(d.Layers, LayerBuffer{
			Name:      l.cfg.Name,
			Count:     l.Len(),
			Opacity:   l.cfg.Opacity,
			Positions: pos,
			Colors:    col,
			Sizes:     append([]float32(nil), l.sizes...),
		})
	}
	for _, sh := range s.shapes {
		d.Shapes = append(d.Shapes, ShapeInfo{
			Name:      sh.cfg.Name,
			Kind:      sh.cfg.Kind,
			Color:     Hex(sh.cfg.Color),
			Scale:     sh.cfg.Scale,
			Wireframe: sh.cfg.Wireframe,
		})
	}
	return d
}

// Frame snapshots the current transforms. It must be called from the
// goroutine that ticks the scene, typically from a registered Element.
func (s *Scene) Frame() Frame {
	f := Frame{
		Camera: CameraTransform{Position: s.camera.Position, Target: s.camera.Target},
		Layers: make([]LayerTransform, len(s.layers)),
		Shapes: make([]ShapeTransform, len(s.shapes)),
	}
	for i, l := range s.layers {
		f.Layers[i] = LayerTransform{Rotation: l.Rotation, Offset: l.Offset}
	}
	for i, sh := range s.shapes {
		f.Shapes[i] = ShapeTransform{Rotation: sh.Rotation, Position: sh.Position, Scale: sh.Scale}
	}
	return f
}

// stamp fills the tick fields of a frame.
func (f Frame) stamp(ft FrameTick) Frame {
	f.Seq = ft.Seq
	f.Elapsed = ft.Elapsed.Seconds()
	f.Scroll = ft.Scroll
	return f
}

// Emit registers fn to receive a snapshot after every tick. Registering it
// after Mount places it behind every scene element.
func (s *Scene) Emit(fn func(Frame)) {
	s.driver.Register(ElementFunc(func(ft FrameTick) {
		fn(s.Frame().stamp(ft))
	}))
}
