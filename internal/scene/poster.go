package scene

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

const posterMinRadius = 0.75

// Poster rasterizes the scene's current state over its background gradient.
// A degraded scene yields the bare gradient, which is what the page shows in
// its place.
func Poster(s *Scene, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillGradient(img, s.spec.Background)
	rz := vector.NewRasterizer(1, 1)
	for _, p := range Project(s, w, h) {
		drawDisc(img, rz, p)
	}
	return img
}

// WritePoster encodes Poster(s, w, h) as PNG.
func WritePoster(out io.Writer, s *Scene, w, h int) error {
	return png.Encode(out, Poster(s, w, h))
}

func fillGradient(img *image.RGBA, g Gradient) {
	b := img.Bounds()
	rad := float64(g.Angle) * math.Pi / 180
	// CSS angles point "up" at 0deg and turn clockwise.
	dx, dy := float32(math.Sin(rad)), float32(-math.Cos(rad))
	cx, cy := float32(b.Dx())/2, float32(b.Dy())/2
	half := (abs32(dx)*float32(b.Dx()) + abs32(dy)*float32(b.Dy())) / 2
	if half == 0 {
		half = 1
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			t := ((float32(x)-cx)*dx + (float32(y)-cy)*dy) / half
			c := lerpColor(g.From, g.To, clamp01((t+1)/2))
			img.SetRGBA(x, y, color.RGBA{channel(c[0]), channel(c[1]), channel(c[2]), 0xff})
		}
	}
}

func drawDisc(img *image.RGBA, rz *vector.Rasterizer, p Point) {
	r := p.Radius
	if r < posterMinRadius {
		r = posterMinRadius
	}
	side := int(math.Ceil(float64(2 * r)))
	if side < 1 {
		side = 1
	}
	minX := int(p.X - r)
	minY := int(p.Y - r)
	dst := image.Rect(minX, minY, minX+side, minY+side)
	// The rasterizer maps its origin to dst.Min, so partially visible discs
	// are skipped rather than clipped.
	if !dst.In(img.Bounds()) {
		return
	}
	rz.Reset(side, side)
	// Octagon approximation, centred in the local raster.
	c := float32(side) / 2
	const k = 0.41421356 // tan(pi/8)
	rz.MoveTo(c+r, c-r*k)
	rz.LineTo(c+r, c+r*k)
	rz.LineTo(c+r*k, c+r)
	rz.LineTo(c-r*k, c+r)
	rz.LineTo(c-r, c+r*k)
	rz.LineTo(c-r, c-r*k)
	rz.LineTo(c-r*k, c-r)
	rz.LineTo(c+r*k, c-r)
	rz.ClosePath()
	a := clamp01(p.Alpha)
	src := image.NewUniform(color.NRGBA{channel(p.Color[0]), channel(p.Color[1]), channel(p.Color[2]), channel(a)})
	rz.DrawOp = draw.Over
	rz.Draw(img, dst, src, image.Point{})
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
