package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// LayerConfig describes one particle layer. Foreground layers are small and
// dense, background layers large and sparse.
type LayerConfig struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Extent  float32 `json:"extent"`
	Palette Palette `json:"-"`
	SizeMin float32 `json:"sizeMin"`
	SizeMax float32 `json:"sizeMax"`
	Opacity float32 `json:"opacity"`
	// Spin is the angular velocity in radians per second around each axis.
	Spin mgl32.Vec3 `json:"spin"`
	// Elapsed layers set rotation to elapsed*Spin instead of integrating it.
	Elapsed bool `json:"elapsed"`
	// Parallax scales the scene scroll offset applied to this layer.
	Parallax float32 `json:"parallax"`
	// Bob is the amplitude of a slow vertical drift; BobSpeed its frequency.
	Bob      float32 `json:"bob"`
	BobSpeed float32 `json:"bobSpeed"`
}

// Layer is a fixed-size set of particles animated as a rigid group. The buffers
// are sized once by GenerateLayer and never resized.
type Layer struct {
	cfg       LayerConfig
	positions []mgl32.Vec3
	colors    []Color
	sizes     []float32

	Rotation mgl32.Vec3
	Offset   mgl32.Vec3

	scroll ScrollConfig
}

// GenerateLayer samples cfg.Count particles uniformly inside a cube of side
// cfg.Extent centred on the origin. Each particle takes a palette colour at a
// random position scaled by a random intensity.
func GenerateLayer(cfg LayerConfig, rng *rand.Rand) *Layer {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if cfg.SizeMax < cfg.SizeMin {
		cfg.SizeMin, cfg.SizeMax = cfg.SizeMax, cfg.SizeMin
	}
	l := &Layer{
		cfg:       cfg,
		positions: make([]mgl32.Vec3, cfg.Count),
		colors:    make([]Color, cfg.Count),
		sizes:     make([]float32, cfg.Count),
	}
	half := cfg.Extent / 2
	for i := range cfg.Count {
		l.positions[i] = mgl32.Vec3{
			(rng.Float32()*2 - 1) * half,
			(rng.Float32()*2 - 1) * half,
			(rng.Float32()*2 - 1) * half,
		}
		intensity := 0.5 + 0.5*rng.Float32()
		l.colors[i] = cfg.Palette.At(rng.Float32()).Mul(intensity)
		l.sizes[i] = lerp(cfg.SizeMin, cfg.SizeMax, rng.Float32())
	}
	return l
}

func (l *Layer) Config() LayerConfig { return l.cfg }

// Len is the particle count; it equals Config().Count for the layer's lifetime.
func (l *Layer) Len() int { return len(l.positions) }

// Positions, Colors and Sizes expose the generated buffers. Callers must not
// modify them.
func (l *Layer) Positions() []mgl32.Vec3 { return l.positions }
func (l *Layer) Colors() []Color         { return l.colors }
func (l *Layer) Sizes() []float32        { return l.sizes }

// Tick applies the layer's rigid transform for one frame.
func (l *Layer) Tick(ft FrameTick) {
	if l.cfg.Elapsed {
		l.Rotation = l.cfg.Spin.Mul(ft.T())
	} else {
		l.Rotation = l.Rotation.Add(l.cfg.Spin.Mul(ft.Dt()))
	}
	y := l.scroll.Offset(ft.Scroll) * l.cfg.Parallax
	if l.cfg.Bob != 0 {
		y += l.cfg.Bob * sin32(ft.T()*l.cfg.BobSpeed)
	}
	l.Offset = mgl32.Vec3{0, y, 0}
}

// Model is the layer's local-to-world transform.
func (l *Layer) Model() mgl32.Mat4 {
	return mgl32.Translate3D(l.Offset[0], l.Offset[1], l.Offset[2]).Mul4(rotation(l.Rotation))
}

// Flatten packs the buffers into x,y,z / r,g,b float arrays for the wire.
func (l *Layer) Flatten() (positions, colors []float32) {
	positions = make([]float32, 0, 3*len(l.positions))
	colors = make([]float32, 0, 3*len(l.colors))
	for i := range l.positions {
		p, c := l.positions[i], l.colors[i]
		positions = append(positions, p[0], p[1], p[2])
		colors = append(colors, c[0], c[1], c[2])
	}
	return positions, colors
}
