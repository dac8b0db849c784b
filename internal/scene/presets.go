package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrUnknownPreset = errors.New("unknown scene preset")

var (
	nebula = Palette{hex("#6366f1"), hex("#8b5cf6"), hex("#ec4899")}
	ocean  = Palette{hex("#0ea5e9"), hex("#22d3ee"), hex("#a5f3fc")}
	ember  = Palette{hex("#f97316"), hex("#f43f5e"), hex("#fde68a")}
	mist   = Palette{hex("#94a3b8"), hex("#e2e8f0")}
)

func defaultLights() []Light {
	return []Light{
		{Kind: AmbientLight, Color: hex("#ffffff"), Intensity: 0.4},
		{Kind: PointLight, Color: hex("#8b5cf6"), Intensity: 1.2, Position: mgl32.Vec3{10, 10, 10}},
		{Kind: PointLight, Color: hex("#ec4899"), Intensity: 0.8, Position: mgl32.Vec3{-10, -10, -5}},
	}
}

// starfield is the shared foreground/background pair most pages start from.
func starfield(front, back Palette) []LayerConfig {
	return []LayerConfig{
		{
			Name: "foreground", Count: 1500, Extent: 10, Palette: front,
			SizeMin: 0.015, SizeMax: 0.04, Opacity: 0.8,
			Spin: mgl32.Vec3{0.02, 0.05, 0}, Parallax: 0.5,
		},
		{
			Name: "background", Count: 800, Extent: 50, Palette: back,
			SizeMin: 0.05, SizeMax: 0.12, Opacity: 0.4,
			Spin: mgl32.Vec3{0, 0.01, 0.005}, Elapsed: true, Parallax: 0.2,
		},
	}
}

var presets = map[string]func() Spec{
	"home": func() Spec {
		return Spec{
			Name:   "home",
			Title:  "Hero particles",
			Camera: CameraConfig{Position: mgl32.Vec3{0, 0, 5}, FOV: 75, Sway: 0.3},
			Lights: defaultLights(),
			Layers: append(starfield(nebula, mist), LayerConfig{
				Name: "dust", Count: 3000, Extent: 6, Palette: nebula,
				SizeMin: 0.005, SizeMax: 0.015, Opacity: 0.6,
				Spin: mgl32.Vec3{0, -0.03, 0.01}, Parallax: 0.8, Bob: 0.1, BobSpeed: 0.5,
			}),
			Shapes: []ShapeConfig{
				{Name: "ico", Kind: Icosahedron, Position: mgl32.Vec3{-2.5, 1, -1}, Color: hex("#8b5cf6"), Scale: 0.6,
					Speed: 1, Amplitude: 0.3, Spin: mgl32.Vec3{0.3, 0.5, 0}, Wireframe: true},
				{Name: "torus", Kind: Torus, Position: mgl32.Vec3{2.5, -0.5, -2}, Color: hex("#ec4899"), Scale: 0.5,
					Speed: 0.8, Amplitude: 0.25, Phase: 1.2, Spin: mgl32.Vec3{0.4, 0.2, 0.1}, Wireframe: true},
				{Name: "octa", Kind: Octahedron, Position: mgl32.Vec3{0, 2, -3}, Color: hex("#6366f1"), Scale: 0.4,
					Speed: 1.2, Amplitude: 0.2, Phase: 2.4, Spin: mgl32.Vec3{0.2, 0.6, 0.3}},
			},
			Scroll:     ScrollConfig{Scale: 0.002, Limit: 4},
			Background: Gradient{From: hex("#0f172a"), To: hex("#312e81"), Angle: 135},
		}
	},
	"about": func() Spec {
		return Spec{
			Name:       "about",
			Title:      "Drifting field",
			Camera:     CameraConfig{Position: mgl32.Vec3{0, 0, 8}, FOV: 60},
			Lights:     defaultLights(),
			Layers:     starfield(ocean, mist),
			Scroll:     ScrollConfig{Scale: 0.0015, Limit: 3},
			Background: Gradient{From: hex("#082f49"), To: hex("#0f172a"), Angle: 180},
		}
	},
	"projects": func() Spec {
		return Spec{
			Name:   "projects",
			Title:  "Geometry grid",
			Camera: CameraConfig{Position: mgl32.Vec3{0, 0, 10}, FOV: 60},
			Lights: defaultLights(),
			Layers: starfield(nebula, ocean)[:1],
			Shapes: []ShapeConfig{
				{Name: "box-a", Kind: Box, Position: mgl32.Vec3{-3, 1.5, 0}, Color: hex("#22d3ee"), Scale: 0.7,
					Speed: 0.6, Amplitude: 0.2, Spin: mgl32.Vec3{0.2, 0.3, 0}, Wireframe: true},
				{Name: "box-b", Kind: Box, Position: mgl32.Vec3{3, -1.5, -1}, Color: hex("#6366f1"), Scale: 0.5,
					Speed: 0.7, Amplitude: 0.25, Phase: 0.8, Spin: mgl32.Vec3{0.1, 0.4, 0.2}, Wireframe: true},
				{Name: "knot", Kind: TorusKnot, Position: mgl32.Vec3{0, 0, -4}, Color: hex("#8b5cf6"), Scale: 1,
					Speed: 0.4, Amplitude: 0.15, Phase: 1.6, Spin: mgl32.Vec3{0.05, 0.15, 0}},
			},
			Scroll:     ScrollConfig{Scale: 0.003, Limit: 6},
			Background: Gradient{From: hex("#111827"), To: hex("#1e1b4b"), Angle: 160},
		}
	},
	"blog": func() Spec {
		return Spec{
			Name:   "blog",
			Title:  "Quiet dust",
			Camera: CameraConfig{Position: mgl32.Vec3{0, 0, 6}, FOV: 70},
			Lights: defaultLights()[:1],
			Layers: []LayerConfig{{
				Name: "dust", Count: 1200, Extent: 14, Palette: mist,
				SizeMin: 0.01, SizeMax: 0.03, Opacity: 0.5,
				Spin: mgl32.Vec3{0, 0.02, 0}, Elapsed: true, Parallax: 0.3, Bob: 0.2, BobSpeed: 0.3,
			}},
			Scroll:     ScrollConfig{Scale: 0.001, Limit: 2},
			Background: Gradient{From: hex("#18181b"), To: hex("#27272a"), Angle: 180},
		}
	},
	"publications": func() Spec {
		return Spec{
			Name:   "publications",
			Title:  "Orbiting orbs",
			Camera: CameraConfig{Position: mgl32.Vec3{0, 0, 7}, FOV: 65},
			Lights: defaultLights(),
			Layers: starfield(mist, ocean)[1:],
			Shapes: []ShapeConfig{
				{Name: "orb-a", Kind: Orb, Position: mgl32.Vec3{-2, 0.5, -1}, Color: hex("#0ea5e9"), Scale: 0.8,
					Speed: 0.5, Amplitude: 0.3, Pulse: 0.05},
				{Name: "orb-b", Kind: Orb, Position: mgl32.Vec3{2.2, -0.8, -2}, Color: hex("#a5f3fc"), Scale: 0.5,
					Speed: 0.7, Amplitude: 0.2, Phase: 2, Pulse: 0.08},
			},
			Scroll:     ScrollConfig{Scale: 0.0015, Limit: 3},
			Background: Gradient{From: hex("#0c4a6e"), To: hex("#020617"), Angle: 200},
		}
	},
	"contact": func() Spec {
		return Spec{
			Name:   "contact",
			Title:  "Warm orbs",
			Camera: CameraConfig{Position: mgl32.Vec3{0, 0, 6}, FOV: 70},
			Lights: defaultLights(),
			Layers: starfield(ember, mist)[:1],
			Shapes: []ShapeConfig{
				{Name: "orb", Kind: Orb, Position: mgl32.Vec3{0, 0, -2}, Color: hex("#f97316"), Scale: 1.2,
					Speed: 0.6, Amplitude: 0.2, Pulse: 0.06, Spin: mgl32.Vec3{0, 0.1, 0}},
				{Name: "halo", Kind: Torus, Position: mgl32.Vec3{0, 0, -2}, Color: hex("#f43f5e"), Scale: 1.8,
					Speed: 0.6, Amplitude: 0.2, Spin: mgl32.Vec3{0.1, 0, 0.2}, Wireframe: true},
			},
			Scroll:     ScrollConfig{Scale: 0.002, Limit: 2},
			Background: Gradient{From: hex("#431407"), To: hex("#1c1917"), Angle: 145},
		}
	},
}

// Presets lists the built-in scene names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of the named preset.
func Lookup(name string) (Spec, error) {
	build, ok := presets[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}
