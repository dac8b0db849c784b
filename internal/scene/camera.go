package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraConfig struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
	FOV      float32    `json:"fov"` // vertical, degrees
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
	// Sway is a slow horizontal drift amplitude in world units.
	Sway float32 `json:"sway"`
}

type Camera struct {
	cfg    CameraConfig
	scroll ScrollConfig

	Position mgl32.Vec3
	Target   mgl32.Vec3
}

func newCamera(cfg CameraConfig, scroll ScrollConfig) *Camera {
	if cfg.FOV == 0 {
		cfg.FOV = 75
	}
	if cfg.Near == 0 {
		cfg.Near = 0.1
	}
	if cfg.Far == 0 {
		cfg.Far = 1000
	}
	return &Camera{cfg: cfg, scroll: scroll, Position: cfg.Position, Target: cfg.Target}
}

func (c *Camera) Config() CameraConfig { return c.cfg }

// Tick lowers the camera and its target by the scroll offset.
func (c *Camera) Tick(ft FrameTick) {
	dy := c.scroll.Offset(ft.Scroll)
	dx := c.cfg.Sway * sin32(ft.T()*0.1)
	c.Position = c.cfg.Position.Add(mgl32.Vec3{dx, -dy, 0})
	c.Target = c.cfg.Target.Add(mgl32.Vec3{0, -dy, 0})
}

// ViewProjection returns projection*view for the given aspect ratio.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
	view := mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

type LightKind string

const (
	AmbientLight     LightKind = "ambient"
	PointLight       LightKind = "point"
	DirectionalLight LightKind = "directional"
)

// Light is static scene lighting, forwarded to the client renderer as-is.
type Light struct {
	Kind      LightKind  `json:"kind"`
	Color     Color      `json:"-"`
	Intensity float32    `json:"intensity"`
	Position  mgl32.Vec3 `json:"position"`
}
