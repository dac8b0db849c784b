package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGB triple in the 0..1 range.
type Color = mgl32.Vec3

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Color{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

func hex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", clamping every channel.
func Hex(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

func lerpColor(a, b Color, t float32) Color {
	return Color{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}

// Palette is a small ordered set of colours sampled by piecewise interpolation.
type Palette []Color

// At returns the colour at position t along the palette, t clamped to [0,1].
func (p Palette) At(t float32) Color {
	switch len(p) {
	case 0:
		return Color{1, 1, 1}
	case 1:
		return p[0]
	}
	t = clamp01(t)
	span := t * float32(len(p)-1)
	i := int(span)
	if i >= len(p)-1 {
		return p[len(p)-1]
	}
	return lerpColor(p[i], p[i+1], span-float32(i))
}

// Gradient is the static two-stop background that stands in for a scene
// while it loads or when the host cannot render it.
type Gradient struct {
	From  Color   `json:"-"`
	To    Color   `json:"-"`
	Angle float32 `json:"angle"`
}

// CSS renders the gradient as a linear-gradient() value.
func (g Gradient) CSS() string {
	return fmt.Sprintf("linear-gradient(%gdeg, %s, %s)", g.Angle, Hex(g.From), Hex(g.To))
}
