package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type ShapeKind string

const (
	Icosahedron ShapeKind = "icosahedron"
	Octahedron  ShapeKind = "octahedron"
	Torus       ShapeKind = "torus"
	TorusKnot   ShapeKind = "torusKnot"
	Box         ShapeKind = "box"
	// Orb is a softly pulsing sphere.
	Orb ShapeKind = "orb"
)

// ShapeConfig places one floating primitive.
type ShapeConfig struct {
	Name     string     `json:"name"`
	Kind     ShapeKind  `json:"kind"`
	Position mgl32.Vec3 `json:"position"`
	Color    Color      `json:"-"`
	Scale    float32    `json:"scale"`
	// Speed drives the vertical float; Amplitude is its height.
	Speed     float32    `json:"speed"`
	Amplitude float32    `json:"amplitude"`
	Phase     float32    `json:"phase"`
	Spin      mgl32.Vec3 `json:"spin"`
	// Pulse is the relative scale oscillation of orbs.
	Pulse     float32 `json:"pulse"`
	Wireframe bool    `json:"wireframe"`
}

// Shape is a floating primitive mutated every frame.
type Shape struct {
	cfg ShapeConfig

	Rotation mgl32.Vec3
	Position mgl32.Vec3
	Scale    float32
}

func NewShape(cfg ShapeConfig) *Shape {
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	return &Shape{cfg: cfg, Position: cfg.Position, Scale: cfg.Scale}
}

func (s *Shape) Config() ShapeConfig { return s.cfg }

func (s *Shape) Tick(ft FrameTick) {
	s.Rotation = s.Rotation.Add(s.cfg.Spin.Mul(ft.Dt()))
	t := ft.T()
	s.Position = s.cfg.Position
	s.Position[1] += s.cfg.Amplitude * sin32(t*s.cfg.Speed+s.cfg.Phase)
	if s.cfg.Pulse != 0 {
		s.Scale = s.cfg.Scale * (1 + s.cfg.Pulse*sin32(t*s.cfg.Speed*2+s.cfg.Phase))
	}
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }

// rotation builds an XYZ Euler rotation matrix.
func rotation(r mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(r[0]).
		Mul4(mgl32.HomogRotate3DY(r[1])).
		Mul4(mgl32.HomogRotate3DZ(r[2]))
}
